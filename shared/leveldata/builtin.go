package leveldata

func blk(x, y, w, h float64) Body      { return Body{Kind: Block, X: x, Y: y, W: w, H: h} }
func door(x, y float64) Body           { return Body{Kind: Door, X: x, Y: y} }
func spring(x, y float64) Body         { return Body{Kind: SpringBoard, X: x, Y: y} }
func key(x, y float64) Body            { return Body{Kind: Key, X: x, Y: y} }
func jet(x, y float64) Body            { return Body{Kind: Jet, X: x, Y: y} }
func rotator(x, y float64, d int) Body { return Body{Kind: GravityRotator, X: x, Y: y, Dir: d} }

func spikes(x, y, w, h float64, d int) Body {
	return Body{Kind: Spikes, X: x, Y: y, W: w, H: h, Dir: d}
}

func crossbow(x, y float64, dx, dy int) Body {
	return Body{Kind: Crossbow, X: x, Y: y, DX: dx, DY: dy}
}

// Builtin returns the standard campaign. Difficulty codes select a prefix of
// it: normal plays three levels, hard five and extreme all six.
func Builtin() []Level {
	return []Level{
		{
			Name:  "first steps",
			Start: Point{413, 465},
			Bodies: []Body{
				blk(0, 590, 590, 10),
				blk(10, 0, 590, 10),
				blk(0, 100, 10, 490),
				blk(590, 10, 10, 590),
				blk(120, 370, 50, 50),
				blk(280, 340, 150, 40),
				blk(200, 187, 20, 20),
				blk(10, 100, 150, 20),
				door(0, 0),
				blk(10, 490, 50, 100),
				blk(490, 294, 100, 20),
				key(538, 237),
				blk(280, 290, 50, 50),
			},
		},
		{
			Name:  "bounce",
			Start: Point{50, 50},
			Bodies: []Body{
				key(400, 400),
				door(590, 490),
				blk(0, 0, 10, 590),
				blk(0, 590, 600, 10),
				blk(10, 0, 590, 10),
				blk(590, 10, 10, 480),
				spring(300, 570),
			},
		},
		{
			Name:  "upside down",
			Start: Point{60, 530},
			Bodies: []Body{
				door(0, 490),
				blk(590, 10, 10, 590),
				blk(0, 590, 590, 10),
				blk(10, 0, 590, 10),
				blk(0, 0, 10, 490),
				spikes(10, 300, 10, 100, 1),
				rotator(474, 539, -1),
				key(531, 541),
				rotator(517, 162, -1),
				key(372, 98),
				rotator(280, 105, -1),
				key(66, 192),
			},
		},
		{
			Name:  "crossfire",
			Start: Point{40, 530},
			Bodies: []Body{
				blk(0, 0, 600, 10),
				blk(0, 10, 10, 600),
				blk(10, 590, 590, 10),
				blk(590, 110, 10, 480),
				door(590, 10),
				key(197, 461),
				key(415, 302),
				key(272, 116),
				key(445, 62),
				jet(280, 206),
				crossbow(550, 300, -1, 0),
				blk(375, 338, 100, 10),
				blk(240, 238, 100, 10),
				spring(250, 570),
			},
		},
		{
			Name:  "spike pit",
			Start: Point{15, 545},
			Bodies: []Body{
				blk(150, 470, 200, 10),
				blk(510, 310, 66, 151),
				blk(425, 310, 88, 58),
				blk(425, 415, 92, 50),
				blk(0, 590, 600, 10),
				blk(0, 0, 10, 590),
				blk(10, 0, 590, 10),
				blk(590, 200, 10, 390),
				blk(590, 10, 10, 90),
				blk(510, 275, 50, 50),
				jet(405, 380),
				key(90, 380),
				key(370, 155),
				rotator(505, 315, 1),
				spikes(150, 580, 430, 10, -1),
				crossbow(460, 375, -1, 0),
				spring(60, 570),
				door(590, 100),
			},
		},
		{
			Name:  "gauntlet",
			Start: Point{20, 545},
			Bodies: []Body{
				blk(0, 0, 600, 10),
				blk(0, 590, 600, 10),
				blk(0, 10, 10, 580),
				blk(590, 10, 10, 480),
				door(590, 490),
				blk(100, 480, 120, 10),
				blk(300, 400, 120, 10),
				blk(120, 300, 120, 10),
				blk(380, 220, 150, 10),
				key(150, 450),
				key(350, 370),
				key(170, 270),
				key(450, 190),
				jet(50, 200),
				crossbow(10, 150, 1, 0),
				crossbow(250, 10, 0, 1),
				crossbow(550, 330, -1, 0),
				spikes(200, 580, 200, 10, -1),
				spring(450, 570),
			},
		},
	}
}

// Lounge is the shared room finished players wait in. It has no gate.
func Lounge() Level {
	return Level{
		Name:  "lounge",
		Start: Point{280, 545},
		Bodies: []Body{
			blk(0, 0, 600, 10),
			blk(0, 590, 600, 10),
			blk(0, 10, 10, 580),
			blk(590, 10, 10, 580),
		},
	}
}
