package shader

// Face draws mesh faces. Positions reach the shader relative to the camera,
// which sits at the origin of uView. The fragment stage performs the alpha
// test selected by uAlphaFunc (0 off, 1 greater, 2 equal, 3 less) and a
// single directional light.
var Face = Program{
	Name: "face",
	Vertex: `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;
		layout (location = 2) in vec2 aTexCoord;

		uniform mat4 uProjection;
		uniform mat4 uView;
		uniform mat4 uModel;

		out vec3 vPosition;
		out vec3 vNormal;
		out vec2 vTexCoord;

		void main() {
			vec4 world = uModel * vec4(aPos, 1.0);
			gl_Position = uProjection * uView * world;
			vPosition = world.xyz;
			vNormal = mat3(uModel) * aNormal;
			vTexCoord = aTexCoord;
		}
	`,
	Fragment: `
		#version 410 core

		uniform vec4 uColor;
		uniform float uBrightness;
		uniform bool uHasTexture;
		uniform sampler2D uTexture;

		uniform bool uIsLight;
		uniform vec3 uLightPosition;
		uniform vec3 uLightAmbient;
		uniform vec3 uLightDiffuse;
		uniform vec3 uLightSpecular;
		uniform float uLightModel;

		uniform int uAlphaFunc;
		uniform float uAlphaRef;

		in vec3 vPosition;
		in vec3 vNormal;
		in vec2 vTexCoord;
		out vec4 FragColor;

		void main() {
			vec4 color = uColor;
			if (uHasTexture) {
				color *= texture(uTexture, vTexCoord);
			}

			if (uIsLight && length(vNormal) > 1e-6) {
				vec3 n = normalize(vNormal);
				vec3 l = normalize(uLightPosition);
				float diffuse = max(dot(n, l), 0.0);
				vec3 h = normalize(l - normalize(vPosition));
				float specular = pow(max(dot(n, h), 0.0), 32.0) * 0.25;
				vec3 light = uLightAmbient * uLightModel + uLightDiffuse * diffuse + uLightSpecular * specular;
				color.rgb *= min(light, vec3(1.0));
			}
			color.rgb *= uBrightness;

			if (uAlphaFunc == 1 && !(color.a > uAlphaRef)) discard;
			if (uAlphaFunc == 2 && abs(color.a - uAlphaRef) > 0.5 / 255.0) discard;
			if (uAlphaFunc == 3 && !(color.a < uAlphaRef)) discard;

			FragColor = color;
		}
	`,
}

// Solid draws flat colored overlay quads.
var Solid = Program{
	Name: "solid",
	Vertex: `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec4 aColor;

		uniform mat4 uProjection;

		out vec4 vColor;

		void main() {
			gl_Position = uProjection * vec4(aPos, 1.0);
			vColor = aColor;
		}
	`,
	Fragment: `
		#version 410 core

		in vec4 vColor;
		out vec4 FragColor;

		void main() {
			FragColor = vColor;
		}
	`,
}

// Text draws overlay glyphs sampled from an atlas whose alpha channel holds
// the coverage.
var Text = Program{
	Name: "text",
	Vertex: `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec2 aTexCoord;
		layout (location = 2) in vec4 aColor;

		uniform mat4 uProjection;

		out vec2 vTexCoord;
		out vec4 vColor;

		void main() {
			gl_Position = uProjection * vec4(aPos, 1.0);
			vTexCoord = aTexCoord;
			vColor = aColor;
		}
	`,
	Fragment: `
		#version 410 core

		uniform sampler2D uTexture;

		in vec2 vTexCoord;
		in vec4 vColor;
		out vec4 FragColor;

		void main() {
			float alpha = texture(uTexture, vTexCoord).a;
			FragColor = vec4(vColor.rgb, vColor.a * alpha);
		}
	`,
}
