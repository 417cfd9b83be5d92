package template

// Catalog helpers. Anchored nodes get a small vertical tolerance around their
// metric line; everything else states its ranges explicitly.

const (
	dx = 0.05 // default horizontal tolerance, fraction of width
	dy = 0.03 // default tolerance around an anchored line, x-height units
)

func near(v, d float64) Range { return Range{Min: v - d, Max: v + d} }

func base(id string, x float64) Node {
	return Node{ID: id, Role: RoleBaseline, X: near(x, dx), Y: near(0, dy)}
}

func xh(id string, x float64) Node {
	return Node{ID: id, Role: RoleXHeight, X: near(x, dx), Y: near(0, dy)}
}

func capTop(id string, x float64) Node {
	return Node{ID: id, Role: RoleCapTop, X: near(x, dx), Y: near(0, dy)}
}

func desc(id string, x float64) Node {
	return Node{ID: id, Role: RoleDescender, X: near(x, dx), Y: near(0, dy)}
}

// lift moves an anchored node off its line by off x-height units.
func lift(n Node, off float64) Node {
	n.Y = near(off, dy)
	return n
}

func free(id string, x, y float64) Node {
	return Node{ID: id, Role: RoleFree, X: near(x, dx), Y: near(y, 0.04)}
}

func bowl(id string, x, y float64) Node {
	return Node{ID: id, Role: RoleBowl, X: near(x, 0.04), Y: near(y, 0.04)}
}

func line(from, to string) Edge {
	return Edge{From: from, To: to, Kind: Straight}
}

func arc(from, to string, lo, hi float64) Edge {
	return Edge{From: from, To: to, Kind: Curved, Curvature: Range{Min: lo, Max: hi}}
}

// Bulge bounds for the quarter arcs of counter-clockwise rings; a ring
// traversed clockwise uses the negated bounds.
const (
	ringLo = -0.42
	ringHi = -0.28
)

// catalog lists the built-in templates. Order matters: it is the selection
// order, so appending keeps existing seeds stable only for letters whose
// eligible set is unchanged.
var catalog = []*Template{
	// Stems.
	{
		ID: "stem", Tags: []string{"stem"},
		Nodes: []Node{base("b", 0.5), xh("x", 0.5), capTop("t", 0.5)},
		Edges: []Edge{line("b", "x"), line("x", "t")},
	},
	{
		ID: "short_stem", Tags: []string{"stem"},
		Nodes: []Node{base("b", 0.5), xh("x", 0.5)},
		Edges: []Edge{line("b", "x")},
	},
	{
		ID: "ladder", Tags: []string{"stem", "bar"},
		Nodes: []Node{
			base("lb", 0.12), lift(xh("lx", 0.12), -0.25), capTop("lt", 0.12),
			base("rb", 0.88), lift(xh("rx", 0.88), -0.25), capTop("rt", 0.88),
		},
		Edges: []Edge{
			line("lb", "lx"), line("lx", "lt"),
			line("rb", "rx"), line("rx", "rt"),
			line("lx", "rx"),
		},
	},
	{
		ID: "trident", Tags: []string{"stem"},
		Nodes: []Node{
			xh("t1", 0.08), xh("t2", 0.5), xh("t3", 0.92),
			base("b1", 0.08), base("b2", 0.5), base("b3", 0.92),
		},
		Edges: []Edge{
			line("t1", "b1"), line("t2", "b2"), line("t3", "b3"),
			line("b1", "b2"), line("b2", "b3"),
		},
	},
	{
		ID: "el", Tags: []string{"stem", "angular"},
		Nodes: []Node{capTop("t", 0.15), xh("x", 0.15), base("c", 0.15), base("f", 0.88)},
		Edges: []Edge{line("t", "x"), line("x", "c"), line("c", "f")},
	},
	{
		ID: "kay", Tags: []string{"stem", "angular"},
		Nodes: []Node{
			capTop("t", 0.15), free("j", 0.15, 0.42), base("b", 0.15),
			xh("arm", 0.85), base("leg", 0.85),
		},
		Edges: []Edge{line("t", "j"), line("j", "b"), line("j", "arm"), line("j", "leg")},
	},

	// Arches and cups.
	{
		ID: "arch", Tags: []string{"arch"},
		Nodes: []Node{
			base("lb", 0.15), lift(xh("lt", 0.15), -0.15),
			lift(xh("rt", 0.85), -0.15), base("rb", 0.85),
		},
		Edges: []Edge{line("lb", "lt"), arc("lt", "rt", 0.35, 0.5), line("rt", "rb")},
	},
	{
		ID: "cup", Tags: []string{"arch"},
		Nodes: []Node{
			xh("lt", 0.15), lift(base("lb", 0.15), 0.15),
			lift(base("rb", 0.85), 0.15), xh("rt", 0.85),
		},
		Edges: []Edge{line("lt", "lb"), arc("lb", "rb", -0.5, -0.35), line("rb", "rt")},
	},
	{
		ID: "arch_stem", Tags: []string{"arch", "stem"},
		Nodes: []Node{
			capTop("st", 0.15), lift(xh("sx", 0.15), -0.2), base("sb", 0.15),
			free("rt", 0.85, 0.8), base("rb", 0.85),
		},
		Edges: []Edge{
			line("st", "sx"), line("sx", "sb"),
			arc("sx", "rt", 0.25, 0.4), line("rt", "rb"),
		},
	},
	{
		ID: "gate", Tags: []string{"arch", "angular"},
		Nodes: []Node{base("lb", 0.1), xh("lt", 0.1), xh("rt", 0.9), base("rb", 0.9)},
		Edges: []Edge{line("lb", "lt"), line("lt", "rt"), line("rt", "rb")},
	},

	// Bowls.
	{
		ID: "bowl", Tags: []string{"bowl", "loop"},
		Nodes: []Node{base("b", 0.5), bowl("r", 0.9, 0.5), xh("t", 0.5), bowl("l", 0.1, 0.5)},
		Edges: []Edge{
			arc("b", "r", ringLo, ringHi), arc("r", "t", ringLo, ringHi),
			arc("t", "l", ringLo, ringHi), arc("l", "b", ringLo, ringHi),
		},
	},
	{
		ID: "bowl_stem", Tags: []string{"bowl", "stem"},
		Nodes: []Node{
			capTop("st", 0.15), lift(xh("sx", 0.15), -0.1), base("sb", 0.15),
			bowl("r", 0.88, 0.45),
		},
		Edges: []Edge{
			line("st", "sx"), line("sx", "sb"),
			arc("sx", "r", -ringHi, -ringLo), arc("r", "sb", -ringHi, -ringLo),
		},
	},
	{
		ID: "bowl_descender", Tags: []string{"bowl", "descender"},
		Nodes: []Node{
			lift(xh("st", 0.85), -0.1), base("sb", 0.85), desc("sd", 0.85),
			bowl("l", 0.12, 0.45),
		},
		Edges: []Edge{
			line("st", "sb"), line("sb", "sd"),
			arc("st", "l", ringLo, ringHi), arc("l", "sb", ringLo, ringHi),
		},
	},
	{
		ID: "eye", Tags: []string{"bowl", "bar"},
		Nodes: []Node{base("b", 0.5), bowl("r", 0.9, 0.5), xh("t", 0.5), bowl("l", 0.1, 0.5)},
		Edges: []Edge{
			arc("b", "r", ringLo, ringHi), arc("r", "t", ringLo, ringHi),
			arc("t", "l", ringLo, ringHi), arc("l", "b", ringLo, ringHi),
			line("l", "r"),
		},
	},
	{
		ID: "spectacles", Tags: []string{"bowl", "loop"},
		Nodes: []Node{
			free("m", 0.5, 0.5),
			xh("lt", 0.28), bowl("l", 0.05, 0.5), base("lb", 0.28),
			base("rb", 0.72), bowl("r", 0.95, 0.5), xh("rt", 0.72),
		},
		Edges: []Edge{
			arc("m", "lt", ringLo, ringHi), arc("lt", "l", ringLo, ringHi),
			arc("l", "lb", ringLo, ringHi), arc("lb", "m", ringLo, ringHi),
			arc("m", "rb", ringLo, ringHi), arc("rb", "r", ringLo, ringHi),
			arc("r", "rt", ringLo, ringHi), arc("rt", "m", ringLo, ringHi),
		},
	},

	// Triads: three strokes meeting at one x-height hub.
	{
		ID: "triad_y", Tags: []string{"triad"},
		Nodes: []Node{xh("h", 0.5), capTop("a", 0.12), capTop("b", 0.88), base("f", 0.5)},
		Edges: []Edge{line("h", "a"), line("h", "b"), line("h", "f")},
	},
	{
		ID: "triad_lambda", Tags: []string{"triad"},
		Nodes: []Node{xh("h", 0.42), capTop("a", 0.3), base("l", 0.08), base("r", 0.92)},
		Edges: []Edge{line("h", "a"), line("h", "l"), line("h", "r")},
	},
	{
		ID: "triad_tee", Tags: []string{"triad", "bar"},
		Nodes: []Node{xh("h", 0.5), free("l", 0.06, 1.0), free("r", 0.94, 1.0), base("f", 0.5)},
		Edges: []Edge{line("h", "l"), line("h", "r"), line("h", "f")},
	},
	{
		ID: "triad_branch", Tags: []string{"triad", "arch"},
		Nodes: []Node{xh("h", 0.25), capTop("u", 0.25), base("d", 0.25), free("r", 0.88, 0.78)},
		Edges: []Edge{line("h", "u"), line("h", "d"), arc("h", "r", 0.2, 0.4)},
	},
	{
		ID: "triad_fan", Tags: []string{"triad"},
		Nodes: []Node{xh("h", 0.5), base("l", 0.1), base("m", 0.5), base("r", 0.9)},
		Edges: []Edge{line("h", "l"), line("h", "m"), line("h", "r")},
	},

	// Crossings.
	{
		ID: "x_cross", Tags: []string{"crossing", "angular"},
		Nodes: []Node{
			free("c", 0.5, 0.5),
			xh("a", 0.1), xh("b", 0.9), base("d", 0.1), base("e", 0.9),
		},
		Edges: []Edge{line("c", "a"), line("c", "b"), line("c", "d"), line("c", "e")},
	},
	{
		ID: "plus_cross", Tags: []string{"crossing"},
		Nodes: []Node{
			free("c", 0.5, 0.55),
			lift(xh("t", 0.5), 0.1), base("b", 0.5), free("l", 0.05, 0.55), free("r", 0.95, 0.55),
		},
		Edges: []Edge{line("c", "t"), line("c", "b"), line("c", "l"), line("c", "r")},
	},
	{
		ID: "dagger", Tags: []string{"crossing", "stem"},
		Nodes: []Node{
			xh("c", 0.5),
			capTop("t", 0.5), base("b", 0.5), free("l", 0.1, 1.0), free("r", 0.9, 1.0),
		},
		Edges: []Edge{line("c", "t"), line("c", "b"), line("c", "l"), line("c", "r")},
	},
	{
		ID: "fish", Tags: []string{"crossing", "loop"},
		Nodes: []Node{bowl("l", 0.1, 0.5), base("a", 0.95), xh("b", 0.95)},
		Edges: []Edge{arc("l", "a", 0.3, 0.45), arc("l", "b", -0.45, -0.3)},
	},

	// Angular shapes.
	{
		ID: "zigzag", Tags: []string{"angular"},
		Nodes: []Node{xh("a", 0.1), xh("b", 0.9), base("c", 0.1), base("d", 0.9)},
		Edges: []Edge{line("a", "b"), line("b", "c"), line("c", "d")},
	},
	{
		ID: "vee", Tags: []string{"angular"},
		Nodes: []Node{xh("a", 0.08), base("m", 0.5), xh("b", 0.92)},
		Edges: []Edge{line("a", "m"), line("m", "b")},
	},
	{
		ID: "double_vee", Tags: []string{"angular"},
		Nodes: []Node{
			xh("a", 0.05), base("m1", 0.28), lift(xh("p", 0.5), -0.25),
			base("m2", 0.72), xh("b", 0.95),
		},
		Edges: []Edge{line("a", "m1"), line("m1", "p"), line("p", "m2"), line("m2", "b")},
	},
	{
		ID: "box_open", Tags: []string{"angular"},
		Nodes: []Node{xh("tr", 0.88), xh("tl", 0.12), base("bl", 0.12), base("br", 0.88)},
		Edges: []Edge{line("tr", "tl"), line("tl", "bl"), line("bl", "br")},
	},
	{
		ID: "delta", Tags: []string{"angular", "loop"},
		Nodes: []Node{xh("a", 0.5), base("l", 0.08), base("r", 0.92)},
		Edges: []Edge{line("a", "l"), line("l", "r"), line("r", "a")},
	},
	{
		ID: "diamond", Tags: []string{"angular", "loop"},
		Nodes: []Node{
			lift(xh("t", 0.5), 0.05), free("r", 0.92, 0.5), base("b", 0.5), free("l", 0.08, 0.5),
		},
		Edges: []Edge{line("t", "r"), line("r", "b"), line("b", "l"), line("l", "t")},
	},

	// Open curves.
	{
		ID: "crescent", Tags: []string{"curve"},
		Nodes: []Node{
			free("tr", 0.85, 0.82), xh("t", 0.5), bowl("l", 0.1, 0.5),
			base("b", 0.5), free("br", 0.85, 0.18),
		},
		Edges: []Edge{
			arc("tr", "t", -0.4, -0.25), arc("t", "l", ringLo, ringHi),
			arc("l", "b", ringLo, ringHi), arc("b", "br", -0.4, -0.25),
		},
	},
	{
		ID: "s_curve", Tags: []string{"curve"},
		Nodes: []Node{
			free("a", 0.85, 0.85), xh("t", 0.5), free("m", 0.5, 0.5),
			base("b", 0.5), free("z", 0.15, 0.15),
		},
		Edges: []Edge{
			arc("a", "t", -0.4, -0.25), arc("t", "m", -0.45, -0.3),
			arc("m", "b", 0.3, 0.45), arc("b", "z", 0.25, 0.4),
		},
	},
	{
		ID: "wave", Tags: []string{"curve"},
		Nodes: []Node{base("a", 0.05), xh("b", 0.35), base("c", 0.65), xh("d", 0.95)},
		Edges: []Edge{arc("a", "b", 0.15, 0.3), arc("b", "c", 0.15, 0.3), arc("c", "d", 0.15, 0.3)},
	},

	// Hooks, loops and descenders.
	{
		ID: "hook", Tags: []string{"hook"},
		Nodes: []Node{xh("t", 0.62), free("k", 0.62, 0.3), lift(base("e", 0.22), 0.05)},
		Edges: []Edge{line("t", "k"), arc("k", "e", 0.25, 0.4)},
	},
	{
		ID: "hook_bar", Tags: []string{"hook", "bar", "stem"},
		Nodes: []Node{
			lift(capTop("top", 0.4), -0.1), lift(xh("mid", 0.4), -0.05), free("knee", 0.4, 0.25),
			lift(base("tail", 0.8), 0.05), free("bl", 0.08, 0.95), free("br", 0.85, 0.95),
		},
		Edges: []Edge{
			line("top", "mid"), line("mid", "knee"), arc("knee", "tail", -0.4, -0.25),
			line("bl", "mid"), line("mid", "br"),
		},
	},
	{
		ID: "loop_tail", Tags: []string{"loop"},
		Nodes: []Node{
			bowl("j", 0.15, 0.5), xh("t", 0.5), bowl("r", 0.9, 0.55),
			base("b", 0.6), free("e", 0.9, 0.15),
		},
		Edges: []Edge{
			arc("j", "t", -ringHi, -ringLo), arc("t", "r", -ringHi, -ringLo), line("j", "r"),
			arc("j", "b", ringLo, ringHi), arc("b", "e", ringLo, ringHi),
		},
	},
	{
		ID: "descender_y", Tags: []string{"descender", "angular"},
		Nodes: []Node{xh("a", 0.1), base("m", 0.5), xh("b", 0.9), desc("tail", 0.2)},
		Edges: []Edge{line("a", "m"), line("b", "m"), arc("m", "tail", -0.2, 0.2)},
	},
}
