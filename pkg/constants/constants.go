package constants

const (
	// TileSize is the pixel size of a logical tile and of every cell in a
	// transition sheet.
	TileSize = 32

	WorldX, WorldY = 100, 100

	// Tiles visible around the camera, odd so the camera tile is centered.
	GridViewportX, GridViewportY = 43, 31

	// The mirror heuristic looks up to two tiles past a cell's corners.
	ResolveMargin = 2
)
