package math

// Integer vectors. They stay integer-valued in shaders (ivecN / uvecN).

type IVec2 struct{ X, Y int32 }
type IVec3 struct{ X, Y, Z int32 }
type IVec4 struct{ X, Y, Z, W int32 }

type UVec2 struct{ X, Y uint32 }
type UVec3 struct{ X, Y, Z uint32 }
type UVec4 struct{ X, Y, Z, W uint32 }

func (v IVec2) Add(other IVec2) IVec2 { return IVec2{v.X + other.X, v.Y + other.Y} }
func (v IVec3) Add(other IVec3) IVec3 { return IVec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z} }

func (v UVec2) Add(other UVec2) UVec2 { return UVec2{v.X + other.X, v.Y + other.Y} }
func (v UVec3) Add(other UVec3) UVec3 { return UVec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z} }
