package renderer

// GLSL sources. Attribute and output locations are bound by the program
// wrapper from the Go types, so the shaders carry no layout qualifiers.

const shadowVertexGLSL = `#version 330 core

in vec3 position;

uniform mat4 model;
uniform mat4 lightViewProj;

void main() {
    gl_Position = lightViewProj * model * vec4(position, 1.0);
}
`

const shadowFragmentGLSL = `#version 330 core

void main() {
}
`

const litVertexGLSL = `#version 330 core

in vec3 position;
in vec3 normal;
in vec2 uv;
in vec4 color;
in vec3 tangent;

uniform mat4 model;
uniform mat4 viewProj;
uniform mat4 lightViewProj;

out vec3 worldPos;
out vec3 worldNormal;
out vec3 worldTangent;
out vec2 texCoord;
out vec4 vertexColor;
out vec4 lightSpacePos;

void main() {
    vec4 world = model * vec4(position, 1.0);
    mat3 m = mat3(model);
    worldPos = world.xyz;
    worldNormal = m * normal;
    worldTangent = m * tangent;
    texCoord = uv;
    vertexColor = color;
    lightSpacePos = lightViewProj * world;
    gl_Position = viewProj * world;
}
`

const litFragmentGLSL = `#version 330 core

in vec3 worldPos;
in vec3 worldNormal;
in vec3 worldTangent;
in vec2 texCoord;
in vec4 vertexColor;
in vec4 lightSpacePos;

uniform vec3 cameraPos;
uniform vec3 lightDir;
uniform vec4 lightColor;
uniform vec4 ambient;
uniform vec4 baseColor;
uniform vec4 emissive;
uniform float metallic;
uniform float roughness;
uniform bool unlit;
uniform float shadowStrength;
uniform sampler2D baseColorMap;
uniform sampler2D normalMap;
uniform sampler2DShadow shadowMap;

out vec4 color;

const float PI = 3.14159265;

float visibility(float ndotl) {
    vec3 p = lightSpacePos.xyz / lightSpacePos.w * 0.5 + 0.5;
    if (p.z > 1.0) {
        return 1.0;
    }
    float bias = max(0.004 * (1.0 - ndotl), 0.0008);
    vec2 texel = 1.0 / vec2(textureSize(shadowMap, 0));
    float sum = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            sum += texture(shadowMap, vec3(p.xy + vec2(x, y) * texel, p.z - bias));
        }
    }
    return mix(1.0, sum / 9.0, shadowStrength);
}

vec3 surfaceNormal() {
    vec3 n = normalize(worldNormal);
    vec3 t = worldTangent - n * dot(n, worldTangent);
    if (dot(t, t) < 1e-8) {
        return n;
    }
    t = normalize(t);
    mat3 tbn = mat3(t, cross(n, t), n);
    return normalize(tbn * (texture(normalMap, texCoord).xyz * 2.0 - 1.0));
}

void main() {
    vec4 albedo = baseColor * vertexColor * texture(baseColorMap, texCoord);
    if (unlit) {
        color = vec4(albedo.rgb + emissive.rgb, albedo.a);
        return;
    }

    vec3 n = surfaceNormal();
    vec3 v = normalize(cameraPos - worldPos);
    vec3 l = normalize(-lightDir);
    vec3 h = normalize(v + l);
    float ndotl = max(dot(n, l), 0.0);
    float ndotv = max(dot(n, v), 1e-4);
    float ndoth = max(dot(n, h), 0.0);

    float a = roughness * roughness;
    float a2 = a * a;
    float d = ndoth * ndoth * (a2 - 1.0) + 1.0;
    float ndf = a2 / (PI * d * d);
    float k = (roughness + 1.0) * (roughness + 1.0) / 8.0;
    float g = ndotl / (ndotl * (1.0 - k) + k) * ndotv / (ndotv * (1.0 - k) + k);
    vec3 f0 = mix(vec3(0.04), albedo.rgb, metallic);
    vec3 fresnel = f0 + (1.0 - f0) * pow(1.0 - max(dot(h, v), 0.0), 5.0);

    vec3 specular = ndf * g * fresnel / max(4.0 * ndotv * ndotl, 1e-4);
    vec3 diffuse = (1.0 - fresnel) * (1.0 - metallic) * albedo.rgb / PI;
    vec3 direct = (diffuse + specular) * lightColor.rgb * ndotl * visibility(ndotl);

    color = vec4(ambient.rgb * albedo.rgb + direct + emissive.rgb, albedo.a);
}
`

const skyVertexGLSL = `#version 330 core

in vec3 position;

uniform mat4 viewProj;

out vec3 direction;

void main() {
    direction = position;
    vec4 p = viewProj * vec4(position, 1.0);
    gl_Position = p.xyww;
}
`

const skyFragmentGLSL = `#version 330 core

in vec3 direction;

uniform samplerCube sky;

out vec4 color;

void main() {
    color = texture(sky, normalize(direction));
}
`

const toneMapVertexGLSL = `#version 330 core

in vec2 position;

out vec2 texCoord;

void main() {
    texCoord = position * 0.5 + 0.5;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const toneMapFragmentGLSL = `#version 330 core

in vec2 texCoord;

uniform sampler2D hdr;
uniform float exposure;

out vec4 color;

void main() {
    vec3 c = texture(hdr, texCoord).rgb;
    vec3 mapped = vec3(1.0) - exp(-c * exposure);
    color = vec4(pow(mapped, vec3(1.0 / 2.2)), 1.0);
}
`
