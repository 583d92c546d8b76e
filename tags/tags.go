package tags

import "github.com/yohamta/donburi"

var (
	Floor = donburi.NewTag().SetName("Floor")
	Notes = donburi.NewTag().SetName("Notes")
	Note  = donburi.NewTag().SetName("Note")
	Rig   = donburi.NewTag().SetName("Rig")
	Hand  = donburi.NewTag().SetName("Hand")
	Saber = donburi.NewTag().SetName("Saber")
	Score = donburi.NewTag().SetName("Score")
	Stats = donburi.NewTag().SetName("Stats")
)

// Resolv tags for collider objects
const (
	ResolvSaber = "saber"
	ResolvNote  = "note"
)
