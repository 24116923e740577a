package primitives

// litVS passes the homogeneous world position through so a projective model
// matrix still reaches the rasterizer; lighting uses the divided position.
const litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz / worldPos.w;
  gl_Position = matProjection * matView * worldPos;
}
`

// flatFS shades each face with one normal taken from screen-space
// derivatives: Phong with one point light plus ambient.
const flatFS = `#version 330
in vec3 fragPosition;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 lightPos;
uniform vec3 lightColor;
uniform float shininess;
out vec4 finalColor;
void main() {
  vec3 N = normalize(cross(dFdx(fragPosition), dFdy(fragPosition)));
  vec3 L = normalize(lightPos - fragPosition);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * lightColor * NdotL;
  vec3 H = normalize(L + V);
  float spec = NdotL > 0.0 ? pow(max(dot(N, H), 0.0), shininess) : 0.0;
  vec3 specular = lightColor * spec * 0.07;
  vec3 color = colDiffuse.rgb * ambient + diffuse + specular;
  finalColor = vec4(min(color, vec3(1.0)), colDiffuse.a);
}
`
