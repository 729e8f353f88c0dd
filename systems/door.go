package systems

import "github.com/automoto/boxninja/components"

// OpenDoor starts closing the door into its frame. Tall doors shrink along
// their height, wide ones along their width.
func OpenDoor(b *components.Body) {
	b.Door.Closing = true
	b.Door.TowardsUp = b.H > b.W
}

// updateDoor shrinks a closing door by one unit per tick, anchored to the
// edge that matches the current world orientation. Once a dimension hits
// zero the door is open for good.
func updateDoor(b *components.Body) {
	d := b.Door
	if d.Closing && b.H > 0 && b.W > 0 {
		if b.Rotation.Active {
			return
		}
		if d.TowardsUp {
			if b.Rotation.Turns == 2 {
				b.Y++
			}
			b.H--
		} else {
			if b.Rotation.Turns == 3 {
				b.X++
			}
			b.W--
		}
		b.SyncProxy()
		return
	}
	if (b.H == 0 || b.W == 0) && !d.Open {
		d.Open = true
	}
}
