package render

import "github.com/delvemap/delvemap/pkg/dungeon"

// Room colors shared by the DOT and minimap renderers.
const (
	fillNormal   = "#d9d9d9"
	fillStart    = "#4caf50"
	fillBoss     = "#b71c1c"
	fillTreasure = "#ffc107"
	fillShop     = "#2196f3"
	fillSecret   = "#f5f5f5"

	strokeRoom = "#333333"
	strokeEdge = "#8a8a8a"
)

// typeFill returns the fill color for a room type.
func typeFill(t dungeon.RoomType) string {
	switch t {
	case dungeon.RoomStart:
		return fillStart
	case dungeon.RoomBoss:
		return fillBoss
	case dungeon.RoomTreasure:
		return fillTreasure
	case dungeon.RoomShop:
		return fillShop
	case dungeon.RoomSecret:
		return fillSecret
	default:
		return fillNormal
	}
}

// typeShape returns the Graphviz node shape for a room type.
func typeShape(t dungeon.RoomType) string {
	switch t {
	case dungeon.RoomStart:
		return "star"
	case dungeon.RoomBoss:
		return "box"
	case dungeon.RoomTreasure:
		return "diamond"
	case dungeon.RoomShop:
		return "house"
	default:
		return "circle"
	}
}
