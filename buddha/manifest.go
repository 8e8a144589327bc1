package buddha

import (
	"github.com/spaghettifunk/buddha/engine/assets"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// Asset names the scene looks resources up by.
const (
	TextureBuddhaNormalMap = "buddha-normals"
	TextureSphericalMap    = "sphere_gold3"
	TextureBuddhaLightMap  = "buddha_lm"
	TextureTable           = "marble"
	TextureTableLightMap   = "table_lm"
	TextureSky             = "sky1"
	TextureShaft           = "shafts"
	TextureDust            = "dust"

	MeshBuddha    = "buddha"
	MeshTable     = "table"
	MeshSky       = "sky"
	MeshShaft     = "shafts"
	MeshDustPatch = "particles_20"
)

const tableTexturePath = "textures/table/marble"

// Manifest lists every asset the scene draws with. The table color map comes
// from the ETC1 file when compressed is set, from the PNG otherwise. No
// texture is flipped: the model UVs address images top row first.
func Manifest(compressed bool) []assets.LoadRequest {
	diffuse := metadata.TextureLoadParams{Use: metadata.TextureUseMapDiffuse, Sampling: metadata.DefaultSampling}
	lightmap := metadata.TextureLoadParams{Use: metadata.TextureUseMapLightmap, Sampling: metadata.DefaultSampling}

	table := assets.NewTextureRequest(TextureTable, tableTexturePath+".png", diffuse)
	if compressed {
		table = assets.NewCompressedTextureRequest(TextureTable, tableTexturePath+".pkm", diffuse)
	}

	return []assets.LoadRequest{
		assets.NewTextureRequest(TextureBuddhaNormalMap, "textures/buddha-normals.png",
			metadata.TextureLoadParams{Use: metadata.TextureUseMapNormal, Sampling: metadata.DefaultSampling}),
		assets.NewTextureRequest(TextureSphericalMap, "textures/sphere_gold3.png",
			metadata.TextureLoadParams{Use: metadata.TextureUseMapSphere, Sampling: metadata.DefaultSampling}),
		assets.NewTextureRequest(TextureBuddhaLightMap, "textures/buddha_lm.png", lightmap),
		table,
		assets.NewTextureRequest(TextureTableLightMap, "textures/table/table_lm.png", lightmap),
		assets.NewTextureRequest(TextureSky, "textures/sky/sky1.png", diffuse),
		assets.NewTextureRequest(TextureShaft, "textures/shafts.png", diffuse),

		assets.NewMeshRequest(MeshTable, "models/table", metadata.LayoutLightmapped),
		assets.NewMeshRequest(MeshBuddha, "models/buddha", metadata.LayoutFull),
		assets.NewMeshRequest(MeshSky, "models/sky", metadata.LayoutPositionUV),
		assets.NewMeshRequest(MeshShaft, "models/shafts", metadata.LayoutFull),
		assets.NewMeshRequest(MeshDustPatch, "models/particles_20", metadata.LayoutPositionUV),
		assets.NewTextureRequest(TextureDust, "textures/dust.png",
			metadata.TextureLoadParams{Use: metadata.TextureUseMapSprite, Sampling: metadata.DefaultSampling}),
	}
}
