package model

// Example is a ready-made program
type Example struct {
	ID          string
	Name        string
	Description string
	Source      string
	Satisfiable bool
}

// Examples returns the built-in example programs
func Examples() []Example {
	return []Example{
		{
			ID:          "graph_coloring_3",
			Name:        "Graph coloring (3 colors, 4 nodes)",
			Description: "Color a triangle plus one extra node so that adjacent nodes get different colors.",
			Satisfiable: true,
			Source: `% Graph coloring: 4 nodes, 3 colors
% n<i>_<c> holds when node i has color c

var bool: n1_r, n1_g, n1_b;
var bool: n2_r, n2_g, n2_b;
var bool: n3_r, n3_g, n3_b;
var bool: n4_r, n4_g, n4_b;

% Every node has exactly one color
constraint exactly(1, [n1_r, n1_g, n1_b]);
constraint exactly(1, [n2_r, n2_g, n2_b]);
constraint exactly(1, [n3_r, n3_g, n3_b]);
constraint exactly(1, [n4_r, n4_g, n4_b]);

% Edges 1-2, 1-3, 2-3, 3-4
constraint not(n1_r /\ n2_r);
constraint not(n1_g /\ n2_g);
constraint not(n1_b /\ n2_b);

constraint not(n1_r /\ n3_r);
constraint not(n1_g /\ n3_g);
constraint not(n1_b /\ n3_b);

constraint not(n2_r /\ n3_r);
constraint not(n2_g /\ n3_g);
constraint not(n2_b /\ n3_b);

constraint not(n3_r /\ n4_r);
constraint not(n3_g /\ n4_g);
constraint not(n3_b /\ n4_b);

solve satisfy;
`,
		},
		{
			ID:          "pigeonhole_3_2",
			Name:        "Pigeonhole (3 pigeons, 2 holes)",
			Description: "Put 3 pigeons into 2 holes with at most one pigeon per hole. Unsatisfiable.",
			Satisfiable: false,
			Source: `% Pigeonhole: 3 pigeons, 2 holes
% p<i>_<j> holds when pigeon i sits in hole j

var bool: p1_1, p1_2;
var bool: p2_1, p2_2;
var bool: p3_1, p3_2;

% Every pigeon sits in some hole
constraint p1_1 \/ p1_2;
constraint p2_1 \/ p2_2;
constraint p3_1 \/ p3_2;

% Every hole takes at most one pigeon
constraint atmost(1, [p1_1, p2_1, p3_1]);
constraint atmost(1, [p1_2, p2_2, p3_2]);

solve satisfy;
`,
		},
		{
			ID:          "simple_logic",
			Name:        "Simple logic puzzle",
			Description: "A small puzzle built from implications and disjunctions.",
			Satisfiable: true,
			Source: `% If it rains I take the umbrella.
% If I take the umbrella or it does not rain, I stay dry.
% It rains.

var bool: rain, umbrella, dry;

constraint rain;
constraint rain -> umbrella;
constraint umbrella \/ not(rain) -> dry;
constraint dry;

solve satisfy;
`,
		},
		{
			ID:          "n_queens_4",
			Name:        "N-Queens (4x4)",
			Description: "Place 4 queens on a 4x4 board so that no two attack each other.",
			Satisfiable: true,
			Source: `% 4-Queens: q<row><column> holds when a queen sits on that square
var bool: q11, q12, q13, q14;
var bool: q21, q22, q23, q24;
var bool: q31, q32, q33, q34;
var bool: q41, q42, q43, q44;

% Exactly one queen per row
constraint exactly(1, [q11, q12, q13, q14]);
constraint exactly(1, [q21, q22, q23, q24]);
constraint exactly(1, [q31, q32, q33, q34]);
constraint exactly(1, [q41, q42, q43, q44]);

% Exactly one queen per column
constraint exactly(1, [q11, q21, q31, q41]);
constraint exactly(1, [q12, q22, q32, q42]);
constraint exactly(1, [q13, q23, q33, q43]);
constraint exactly(1, [q14, q24, q34, q44]);

% At most one queen per diagonal
constraint atmost(1, [q11, q22, q33, q44]);
constraint atmost(1, [q12, q23, q34]);
constraint atmost(1, [q13, q24]);
constraint atmost(1, [q21, q32, q43]);
constraint atmost(1, [q31, q42]);

constraint atmost(1, [q14, q23, q32, q41]);
constraint atmost(1, [q13, q22, q31]);
constraint atmost(1, [q12, q21]);
constraint atmost(1, [q24, q33, q42]);
constraint atmost(1, [q34, q43]);

solve satisfy;
`,
		},
	}
}
