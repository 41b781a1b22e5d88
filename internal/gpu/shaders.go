package gpu

// One GLSL program per primitive kind, plus a final textured-quad
// program used to blit a layer's framebuffer into the composite. Every
// vertex shader consumes board-millimeter coordinates directly and
// relies on uViewProjection (built from Camera) to map them to clip
// space; there is no per-primitive model matrix.

const triangleVertexShader = `#version 330 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aHoleCenter;
layout(location = 2) in float aHoleRadius;
layout(location = 3) in float aExposure;

uniform mat4 uViewProjection;

out vec2 vWorldPos;
out vec2 vHoleCenter;
out float vHoleRadius;
out float vExposure;

void main() {
    vWorldPos = aPos;
    vHoleCenter = aHoleCenter;
    vHoleRadius = aHoleRadius;
    vExposure = aExposure;
    gl_Position = uViewProjection * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const triangleFragmentShader = `#version 330 core
in vec2 vWorldPos;
in vec2 vHoleCenter;
in float vHoleRadius;
in float vExposure;

uniform vec4 uTint;

out vec4 fragColor;

void main() {
    if (vHoleRadius > 0.0 && distance(vWorldPos, vHoleCenter) < vHoleRadius) discard;
    fragColor = uTint * vExposure;
}
` + "\x00"

// Circles, arcs and thermals share a unit quad base mesh, drawn
// instanced, with per-instance attributes carrying each shape's
// center/radius/etc. The fragment shader does the actual disk/ring/arc
// membership test in the quad's local [-1,1] space.

const circleVertexShader = `#version 330 core
layout(location = 0) in vec2 aQuad;
layout(location = 1) in vec2 aCenter;
layout(location = 2) in float aRadius;
layout(location = 3) in vec2 aHoleCenter;
layout(location = 4) in float aHoleRadius;
layout(location = 5) in float aExposure;

uniform mat4 uViewProjection;

out vec2 vLocal;
out vec2 vWorldPos;
out vec2 vHoleCenter;
out float vHoleRadius;
out float vExposure;
out float vRadius;
out vec2 vCenter;

void main() {
    vLocal = aQuad;
    vCenter = aCenter;
    vRadius = aRadius;
    vHoleCenter = aHoleCenter;
    vHoleRadius = aHoleRadius;
    vExposure = aExposure;
    vWorldPos = aCenter + aQuad * aRadius;
    gl_Position = uViewProjection * vec4(vWorldPos, 0.0, 1.0);
}
` + "\x00"

const circleFragmentShader = `#version 330 core
in vec2 vLocal;
in vec2 vWorldPos;
in vec2 vHoleCenter;
in float vHoleRadius;
in float vExposure;
in float vRadius;
in vec2 vCenter;

uniform vec4 uTint;

out vec4 fragColor;

void main() {
    if (dot(vLocal, vLocal) > 1.0) discard;
    if (vHoleRadius > 0.0 && distance(vWorldPos, vHoleCenter) < vHoleRadius) discard;
    fragColor = uTint * vExposure;
}
` + "\x00"

const arcVertexShader = `#version 330 core
layout(location = 0) in vec2 aQuad;
layout(location = 1) in vec2 aCenter;
layout(location = 2) in float aRadius;
layout(location = 3) in float aStartAngle;
layout(location = 4) in float aSweepAngle;
layout(location = 5) in float aThickness;
layout(location = 6) in float aExposure;

uniform mat4 uViewProjection;

out vec2 vWorldPos;
out vec2 vCenter;
out float vRadius;
out float vStartAngle;
out float vSweepAngle;
out float vThickness;
out float vExposure;

void main() {
    vCenter = aCenter;
    vRadius = aRadius;
    vStartAngle = aStartAngle;
    vSweepAngle = aSweepAngle;
    vThickness = aThickness;
    vExposure = aExposure;
    float outer = aRadius + aThickness * 0.5;
    vWorldPos = aCenter + aQuad * outer;
    gl_Position = uViewProjection * vec4(vWorldPos, 0.0, 1.0);
}
` + "\x00"

const arcFragmentShader = `#version 330 core
in vec2 vWorldPos;
in vec2 vCenter;
in float vRadius;
in float vStartAngle;
in float vSweepAngle;
in float vThickness;
in float vExposure;

uniform vec4 uTint;

out vec4 fragColor;

const float TAU = 6.28318530718;

void main() {
    vec2 d = vWorldPos - vCenter;
    float r = length(d);
    if (abs(r - vRadius) > vThickness * 0.5) discard;

    float theta = atan(d.y, d.x) - vStartAngle;
    theta = mod(theta, TAU);
    float sweep = vSweepAngle;
    if (sweep < 0.0) {
        theta -= TAU;
        sweep = -sweep;
        theta = -theta;
    }
    if (theta < 0.0 || theta > sweep) discard;

    fragColor = uTint * vExposure;
}
` + "\x00"

const thermalVertexShader = `#version 330 core
layout(location = 0) in vec2 aQuad;
layout(location = 1) in vec2 aCenter;
layout(location = 2) in float aOuterDiameter;
layout(location = 3) in float aInnerDiameter;
layout(location = 4) in float aGapThickness;
layout(location = 5) in float aRotation;

uniform mat4 uViewProjection;

out vec2 vLocal;
out float vOuterRadius;
out float vInnerRadius;
out float vGapThickness;
out float vRotation;

void main() {
    vLocal = aQuad;
    vOuterRadius = aOuterDiameter * 0.5;
    vInnerRadius = aInnerDiameter * 0.5;
    vGapThickness = aGapThickness;
    vRotation = aRotation;
    vec2 worldPos = aCenter + aQuad * vOuterRadius;
    gl_Position = uViewProjection * vec4(worldPos, 0.0, 1.0);
}
` + "\x00"

const thermalFragmentShader = `#version 330 core
in vec2 vLocal;
in float vOuterRadius;
in float vInnerRadius;
in float vGapThickness;
in float vRotation;

uniform vec4 uTint;

out vec4 fragColor;

void main() {
    float r = length(vLocal) * vOuterRadius;
    if (r > vOuterRadius || r < vInnerRadius) discard;

    float c = cos(-vRotation);
    float s = sin(-vRotation);
    vec2 p = vec2(c * vLocal.x - s * vLocal.y, s * vLocal.x + c * vLocal.y);
    float half = vGapThickness * 0.5 / max(r, 0.0001);
    bool inSpokeX = abs(p.x) < half;
    bool inSpokeY = abs(p.y) < half;
    if (inSpokeX || inSpokeY) discard;

    fragColor = uTint;
}
` + "\x00"

// The composite pass samples a layer's framebuffer texture through an
// unlit textured quad spanning the whole viewport.

const compositeVertexShader = `#version 330 core
layout(location = 0) in vec2 aQuad;
layout(location = 1) in vec2 aUV;

out vec2 vUV;

void main() {
    vUV = aUV;
    gl_Position = vec4(aQuad, 0.0, 1.0);
}
` + "\x00"

const compositeFragmentShader = `#version 330 core
in vec2 vUV;

uniform sampler2D uLayer;

out vec4 fragColor;

void main() {
    fragColor = texture(uLayer, vUV);
}
` + "\x00"
