package caveinfo

import "testing"

func TestParseMapUnit(t *testing.T) {
	src := `
{
room_a room 2 2
}
1 {
N 0 1
E 0 2
}
2 {
enemy 1.5 1.5 0.5 0 0
waypoint 1.0 1.0
}
3 {
d0 w0 1.5
}
`
	u, err := ParseMapUnit("room_a.txt", src)
	if err != nil {
		t.Fatalf("ParseMapUnit: %v", err)
	}
	if u.InternalName != "room_a" || u.Shape != ShapeRoom || u.Width != 2 || u.Height != 2 {
		t.Fatalf("header mismatch: %+v", u)
	}
	if len(u.Doors) != 2 {
		t.Fatalf("got %d doors, want 2", len(u.Doors))
	}
	if u.Doors[0].Side != DoorNorth || u.Doors[0].Offset != 0 || u.Doors[0].DoorType != 1 {
		t.Errorf("door 0 = %+v", u.Doors[0])
	}
	if u.Doors[1].Side != DoorEast || u.Doors[1].DoorType != 2 {
		t.Errorf("door 1 = %+v", u.Doors[1])
	}
	if len(u.SpawnPoints) != 2 {
		t.Fatalf("got %d spawn points, want 2", len(u.SpawnPoints))
	}
	if u.SpawnPoints[0].Kind != SpawnEnemy || u.SpawnPoints[0].Radius != 0.5 {
		t.Errorf("spawn 0 = %+v", u.SpawnPoints[0])
	}
	if u.SpawnPoints[1].Kind != SpawnWaypoint {
		t.Errorf("spawn 1 = %+v", u.SpawnPoints[1])
	}
	if len(u.Adjacency) != 1 {
		t.Fatalf("got %d adjacency edges, want 1", len(u.Adjacency))
	}
	edge := u.Adjacency[0]
	if edge.FromKind != AdjDoor || edge.FromIndex != 0 || edge.ToKind != AdjWaypoint || edge.ToIndex != 0 || edge.Weight != 1.5 {
		t.Errorf("adjacency edge = %+v", edge)
	}
}

func TestParseMapUnit_CapShape(t *testing.T) {
	src := `
{
cap_x cap 1 1
}
1 {
S 0 0
}
`
	u, err := ParseMapUnit("cap_x.txt", src)
	if err != nil {
		t.Fatalf("ParseMapUnit: %v", err)
	}
	if u.Shape != ShapeCap {
		t.Errorf("Shape = %v, want ShapeCap", u.Shape)
	}
	if len(u.Doors) != 1 {
		t.Fatalf("got %d doors, want 1", len(u.Doors))
	}
}
