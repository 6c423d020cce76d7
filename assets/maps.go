package assets

// DefaultMap is the built-in level: node size, width, height, then rows.
// Digits are patrol waypoints; enemy N in map order walks group N.
const DefaultMap = `5
20
12
xxxxxxxxxxxxxxxxxxxx
x0......x.........1x
x.p.....x..........x
x...o...x...e......x
x.......x..........x
x..xxxxxx....xxxx..x
x..e..........d....x
x.........1........x
x0.....xxxxxx......x
x..................x
x.d.......g.....0..x
xxxxxxxxxxxxxxxxxxxx
`

// CorridorMap is a small level with one goat pacing a corridor.
const CorridorMap = `5
9
5
xxxxxxxxx
x0.....0x
x.xxxxx.x
xp.o.e.gx
xxxxxxxxx
`
