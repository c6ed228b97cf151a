package primitives

import "github.com/go-gl/mathgl/mgl32"

// Vertex colors.
var (
	ColorWhite   = mgl32.Vec3{1, 1, 1}
	ColorBlack   = mgl32.Vec3{0, 0, 0}
	ColorRed     = mgl32.Vec3{1, 0, 0}
	ColorGreen   = mgl32.Vec3{0, 1, 0}
	ColorBlue    = mgl32.Vec3{0, 0, 1}
	ColorYellow  = mgl32.Vec3{1, 1, 0}
	ColorCyan    = mgl32.Vec3{0, 1, 1}
	ColorMagenta = mgl32.Vec3{1, 0, 1}
)

// CubeCompactGeometry holds the 8 corners of a unit cube centered on the origin.
var CubeCompactGeometry = []mgl32.Vec3{
	{-0.5, 0.5, -0.5},
	{0.5, 0.5, -0.5},
	{0.5, -0.5, -0.5},
	{-0.5, -0.5, -0.5},
	{-0.5, 0.5, 0.5},
	{0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5},
	{-0.5, -0.5, 0.5},
}

// CubeCompactIndices are the 12 triangles over CubeCompactGeometry, clockwise
// when seen from outside in a left-handed view.
var CubeCompactIndices = []uint16{
	0, 2, 1, 0, 3, 2, // front
	5, 7, 4, 5, 6, 7, // back
	4, 1, 5, 4, 0, 1, // top
	6, 3, 7, 6, 2, 3, // bottom
	7, 0, 4, 7, 3, 0, // left
	2, 5, 1, 2, 6, 5, // right
}

// CubeCompactColors gives each corner of CubeCompactGeometry its own color.
var CubeCompactColors = []mgl32.Vec3{
	ColorWhite,
	ColorBlack,
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorYellow,
	ColorCyan,
	ColorMagenta,
}

// CubeGeometry lists the 36 vertices of a unit cube, six per face, so that
// each face can carry its own normal.
var CubeGeometry = []mgl32.Vec3{
	// front
	{-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	// back
	{0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5},
	{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5},
	// top
	{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5},
	{0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5},
	// bottom
	{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5},
	// left
	{-0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5},
	{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5},
	// right
	{0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5},
}

var cubeFaceNormals = []mgl32.Vec3{
	{0, 0, -1},
	{0, 0, 1},
	{0, 1, 0},
	{0, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
}

// CubeNormals is the per-vertex normal of CubeGeometry.
var CubeNormals = func() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, len(cubeFaceNormals)*6)
	for _, n := range cubeFaceNormals {
		for range 6 {
			out = append(out, n)
		}
	}
	return out
}()

// TriangleGeometry is an equilateral triangle inscribed in the unit circle.
var TriangleGeometry = []mgl32.Vec3{
	{0, 1, 0},
	{-0.866, -0.5, 0},
	{0.866, -0.5, 0},
}

// TriangleColors colors the triangle corners red, green and blue.
var TriangleColors = []mgl32.Vec3{ColorRed, ColorGreen, ColorBlue}
