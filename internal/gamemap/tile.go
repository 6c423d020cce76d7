package gamemap

// TileKind identifies what a map cell was decoded as.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileEnemy
	TilePlayer
	TileBall
	TileGoal
	TileDecoration
	TilePatrol
)

// Map characters.
const (
	CharFloor      = '.'
	CharWall       = 'x'
	CharEnemy      = 'e'
	CharPlayer     = 'p'
	CharBall       = 'o'
	CharGoal       = 'g'
	CharDecoration = 'd'
)

// Tile holds the decoded content of one grid cell.
type Tile struct {
	Kind     TileKind
	Char     byte
	Walkable bool
	// Patrol is the waypoint group for TilePatrol cells and -1 otherwise.
	Patrol int
}

// MakeWall returns a blocking wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall, Char: CharWall, Patrol: -1}
}

// MakeFloor returns a walkable empty tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Char: CharFloor, Walkable: true, Patrol: -1}
}

// DecodeTile maps a map character to its tile. Every character other
// than a wall is walkable; unknown characters decode as floor.
func DecodeTile(c byte) Tile {
	t := Tile{Char: c, Walkable: true, Patrol: -1}
	switch {
	case c == CharWall:
		return MakeWall()
	case c == CharEnemy:
		t.Kind = TileEnemy
	case c == CharPlayer:
		t.Kind = TilePlayer
	case c == CharBall:
		t.Kind = TileBall
	case c == CharGoal:
		t.Kind = TileGoal
	case c == CharDecoration:
		t.Kind = TileDecoration
	case c >= '0' && c <= '9':
		t.Kind = TilePatrol
		t.Patrol = int(c - '0')
	default:
		t.Kind = TileFloor
	}
	return t
}
