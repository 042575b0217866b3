package math

import (
	"math"
	"testing"

	"glsafe/glsl"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)
	
	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}
	
	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}
	
	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}
	
	// Dot product
	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}
	
	// Cross product (Right x Up = Front in right-handed system)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)
	
	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}
	
	// Check length is 1
	length := normalized.Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	
	// Check diagonal is 1
	for i := 0; i < 4; i++ {
		if m[i][i] != 1 {
			t.Errorf("Identity: expected diagonal to be 1, got %v", m[i][i])
		}
	}
	
	// Check non-diagonal is 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && m[i][j] != 0 {
				t.Errorf("Identity: expected non-diagonal to be 0, got %v", m[i][j])
			}
		}
	}
}

func TestMat4Multiplication(t *testing.T) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()
	
	result := m1.Mul(m2)
	
	// Identity * Identity = Identity
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if result[i][j] != expected {
				t.Errorf("Mul: expected [%d][%d] = %v, got %v", i, j, expected, result[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)
	
	// Check translation components
	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}
	
	// Test transforming a point
	point := Vec4{W: 1}
	result := point.MulMat(m)
	
	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("QuaternionIdentity: expected (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuaternionRotation(t *testing.T) {
	// 90 degree rotation around Y axis
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	
	// Rotate the X unit vector 90 degrees around Y should give Z
	result := q.RotateVector(Vec3Right)
	
	// Check that result is approximately -Z (due to coordinate system)
	tolerance := float32(0.001)
	if math.Abs(float64(result.X-0)) > float64(tolerance) ||
		math.Abs(float64(result.Y-0)) > float64(tolerance) ||
		math.Abs(float64(result.Z+1)) > float64(tolerance) {
		t.Errorf("Quaternion rotation: expected approximately (0,0,-1), got (%v,%v,%v)", result.X, result.Y, result.Z)
	}
}

func TestMat4Perspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(16.0 / 9.0)
	near := float32(0.1)
	far := float32(100.0)
	
	m := Mat4Perspective(fov, aspect, near, far)
	
	// Check aspect ratio affects the matrix
	if m[0][0] == 0 {
		t.Error("Perspective: expected non-zero X scale")
	}
	if m[1][1] == 0 {
		t.Error("Perspective: expected non-zero Y scale")
	}
}

func TestMat4LookAt(t *testing.T) {
eye := NewVec3(0, 0, 5)
	target := NewVec3(0, 0, 0)
	up := Vec3Up
	
	m := Mat4LookAt(eye, target, up)
	
	// The view matrix should transform the eye position to origin
	point := eye.ToVec4(1)
	result := m.MulVec(point)
	
	tolerance := float32(0.001)
	if math.Abs(float64(result.X)) > float64(tolerance) ||
		math.Abs(float64(result.Y)) > float64(tolerance) ||
		math.Abs(float64(result.Z)) > float64(tolerance) {
		t.Errorf("LookAt: expected eye to transform to origin, got (%v,%v,%v)", result.X, result.Y, result.Z)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3FromMat4(Mat4RotationY(0.7).Mul(Mat4Scale(NewVec3(2, 3, 4))))
	result := m.Mul(m.Inverse())
	identity := Mat3Identity()

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(float64(result[i][j]-identity[i][j])) > 0.0001 {
				t.Errorf("Inverse: expected identity at [%d][%d], got %v", i, j, result[i][j])
			}
		}
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	n := NormalMatrix(Mat4Scale(NewVec3(2, 2, 2)))
	v := n.MulVec(Vec3Up)
	if math.Abs(float64(v.Y-0.5)) > 0.0001 || v.X != 0 || v.Z != 0 {
		t.Errorf("NormalMatrix: expected (0,0.5,0), got %v", v)
	}
}

func TestMat4UniformLayout(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	var v glsl.Value
	m.UniformValue(&v)

	// Column-major on the GPU: translation occupies elements 12..14.
	if v.Floats[12] != 1 || v.Floats[13] != 2 || v.Floats[14] != 3 || v.Floats[15] != 1 {
		t.Errorf("UniformValue: expected translation in last column, got %v", v.Floats[12:])
	}
	if got := m.UniformType().Name(); got != "mat4" {
		t.Errorf("UniformType: expected mat4, got %s", got)
	}
}

func TestAttribFormats(t *testing.T) {
	cases := []struct {
		format glsl.AttribFormat
		glsl   string
		bytes  int
	}{
		{(*Vec2)(nil).AttribFormat(), "vec2", 8},
		{(*Vec3)(nil).AttribFormat(), "vec3", 12},
		{(*Mat4)(nil).AttribFormat(), "mat4", 64},
		{(*Mat3)(nil).AttribFormat(), "mat3", 36},
		{(*IVec2)(nil).AttribFormat(), "ivec2", 8},
		{(*UVec4)(nil).AttribFormat(), "uvec4", 16},
	}
	for _, c := range cases {
		if got := c.format.ShaderType().Name(); got != c.glsl {
			t.Errorf("ShaderType: expected %s, got %s", c.glsl, got)
		}
		if got := c.format.Bytes(); got != c.bytes {
			t.Errorf("Bytes(%s): expected %d, got %d", c.glsl, c.bytes, got)
		}
		if err := c.format.Validate(); err != nil {
			t.Errorf("Validate(%s): %v", c.glsl, err)
		}
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)
	
	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()
	
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func TestMat4RotationAxisMatchesY(t *testing.T) {
	a := Mat4RotationAxis(Vec3Up, 0.7)
	b := Mat4RotationY(0.7)
	for i := range 4 {
		for j := range 4 {
			if math.Abs(float64(a[i][j]-b[i][j])) > 1e-6 {
				t.Errorf("RotationAxis[%d][%d]: expected %v, got %v", i, j, b[i][j], a[i][j])
			}
		}
	}
}

func TestQuaternionSlerp(t *testing.T) {
	from := QuaternionIdentity()
	to := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	half := from.Slerp(to, 0.5)
	expected := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/4))

	tolerance := 1e-5
	if math.Abs(float64(half.Y-expected.Y)) > tolerance || math.Abs(float64(half.W-expected.W)) > tolerance {
		t.Errorf("Slerp: expected %v, got %v", expected, half)
	}
	if end := from.Slerp(to, 1); math.Abs(float64(end.Y-to.Y)) > tolerance {
		t.Errorf("Slerp end: expected %v, got %v", to, end)
	}
}

func TestMat2Identity(t *testing.T) {
	var v glsl.Value
	m := Mat2Identity()
	m.UniformValue(&v)
	if v.Floats[0] != 1 || v.Floats[1] != 0 || v.Floats[2] != 0 || v.Floats[3] != 1 {
		t.Errorf("Mat2Identity upload: got %v", v.Floats[:4])
	}
}

func TestVec2Cross(t *testing.T) {
	a := Vec2{X: 1}
	b := Vec2{Y: 2}
	if got := a.Cross(b); got != 2 {
		t.Errorf("Cross: expected 2, got %v", got)
	}
	if got := b.Cross(a); got != -2 {
		t.Errorf("Cross: expected -2, got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{X: -1, Y: 2}) {
		t.Errorf("Sub: expected (-1,2), got %v", got)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	if got := (Vec4{X: 2, Y: 4, Z: 6, W: 2}).ToVec3DivW(); got != NewVec3(1, 2, 3) {
		t.Errorf("ToVec3DivW: expected (1,2,3), got %v", got)
	}
	if got := (Vec4{X: 2, Y: 4, Z: 6}).ToVec3DivW(); got != NewVec3(2, 4, 6) {
		t.Errorf("ToVec3DivW at infinity: expected (2,4,6), got %v", got)
	}

	v := Vec4{X: 1, Y: 2, Z: 3, W: 4}
	var u glsl.Value
	v.UniformValue(&u)
	if u.Floats[0] != 1 || u.Floats[3] != 4 {
		t.Errorf("UniformValue: expected 1..4, got %v", u.Floats[:4])
	}
	if got := v.UniformType().Name(); got != "vec4" {
		t.Errorf("UniformType: expected vec4, got %s", got)
	}
}
