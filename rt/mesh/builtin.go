package mesh

// Built-in geometry, position[4] + texcoord[2] per vertex, triangle-list order.

var TriangleVertices = []float32{
	0.0, 0.0, 0.5, 1.0, 0.5, 0.0,
	0.0, -0.5, -0.5, 1.0, 0.0, 1.0,
	0.0, 0.5, -0.5, 1.0, 1.0, 1.0,
}

var QuadVertices = []float32{
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 1.0, 1.0, 0.0,
	0.5, 0.5, 0.0, 1.0, 1.0, 1.0,

	0.5, 0.5, 0.0, 1.0, 1.0, 1.0,
	-0.5, 0.5, 0.0, 1.0, 0.0, 1.0,
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
}

var CubeVertices = []float32{
	// -Y
	0.5, -0.5, 0.5, 1, 0, 1,
	-0.5, -0.5, 0.5, 1, 1, 1,
	-0.5, -0.5, -0.5, 1, 1, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 1,
	-0.5, -0.5, -0.5, 1, 1, 0,

	// +X
	0.5, 0.5, 0.5, 1, 0, 1,
	0.5, -0.5, 0.5, 1, 1, 1,
	0.5, -0.5, -0.5, 1, 1, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 1,
	0.5, -0.5, -0.5, 1, 1, 0,

	// +Y
	-0.5, 0.5, 0.5, 1, 0, 1,
	0.5, 0.5, 0.5, 1, 1, 1,
	0.5, 0.5, -0.5, 1, 1, 0,
	-0.5, 0.5, -0.5, 1, 0, 0,
	-0.5, 0.5, 0.5, 1, 0, 1,
	0.5, 0.5, -0.5, 1, 1, 0,

	// -X
	-0.5, -0.5, 0.5, 1, 0, 1,
	-0.5, 0.5, 0.5, 1, 1, 1,
	-0.5, 0.5, -0.5, 1, 1, 0,
	-0.5, -0.5, -0.5, 1, 0, 0,
	-0.5, -0.5, 0.5, 1, 0, 1,
	-0.5, 0.5, -0.5, 1, 1, 0,

	// +Z
	0.5, 0.5, 0.5, 1, 0, 1,
	-0.5, 0.5, 0.5, 1, 1, 1,
	-0.5, -0.5, 0.5, 1, 1, 0,
	-0.5, -0.5, 0.5, 1, 1, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 1,

	// -Z
	0.5, 0.5, -0.5, 1, 0, 1,
	-0.5, -0.5, -0.5, 1, 1, 0,
	-0.5, 0.5, -0.5, 1, 1, 1,
	-0.5, -0.5, -0.5, 1, 1, 0,
	0.5, 0.5, -0.5, 1, 0, 1,
	0.5, -0.5, -0.5, 1, 0, 0,
}
