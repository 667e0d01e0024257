package foto_test

import (
	"encoding/json"
	"testing"

	"fotolink/internal/foto"
)

func TestFolderRecord_JSON(t *testing.T) {
	t.Run("marshals as a name-owner tuple", func(t *testing.T) {
		rec := foto.FolderRecord{Name: "/Photos/2023", OwnerID: 2}

		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		want := `["/Photos/2023",2]`
		if string(data) != want {
			t.Errorf("Marshal() = %s, want %s", data, want)
		}
	})

	t.Run("unmarshals a tuple", func(t *testing.T) {
		var rec foto.FolderRecord
		if err := json.Unmarshal([]byte(`["/Shared/Events", 5]`), &rec); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		if rec.Name != "/Shared/Events" {
			t.Errorf("Name = %q, want %q", rec.Name, "/Shared/Events")
		}
		if rec.OwnerID != 5 {
			t.Errorf("OwnerID = %d, want 5", rec.OwnerID)
		}
	})

	t.Run("rejects wrong element count", func(t *testing.T) {
		var rec foto.FolderRecord
		if err := json.Unmarshal([]byte(`["/Photos", 2, "extra"]`), &rec); err == nil {
			t.Fatal("Unmarshal() expected error for 3-element tuple")
		}
	})

	t.Run("rejects non-array", func(t *testing.T) {
		var rec foto.FolderRecord
		if err := json.Unmarshal([]byte(`{"name": "/Photos"}`), &rec); err == nil {
			t.Fatal("Unmarshal() expected error for object")
		}
	})
}

func TestFolderMap_JSON(t *testing.T) {
	m := foto.FolderMap{
		10: {Name: "/Photos", OwnerID: 1},
		22: {Name: "/Shared/Trips", OwnerID: 3},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got foto.FolderMap
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[10] != m[10] {
		t.Errorf("entry 10 = %+v, want %+v", got[10], m[10])
	}
	if got[22] != m[22] {
		t.Errorf("entry 22 = %+v, want %+v", got[22], m[22])
	}
}

func TestFolderMap_Merge(t *testing.T) {
	t.Run("copies new entries", func(t *testing.T) {
		m := foto.FolderMap{1: {Name: "/a", OwnerID: 1}}
		conflicts := m.Merge(foto.FolderMap{2: {Name: "/b", OwnerID: 1}})

		if len(conflicts) != 0 {
			t.Errorf("conflicts = %v, want none", conflicts)
		}
		if len(m) != 2 {
			t.Errorf("got %d entries, want 2", len(m))
		}
	})

	t.Run("identical re-listing is not a conflict", func(t *testing.T) {
		m := foto.FolderMap{7: {Name: "/Shared", OwnerID: 2}}
		conflicts := m.Merge(foto.FolderMap{7: {Name: "/Shared", OwnerID: 2}})

		if len(conflicts) != 0 {
			t.Errorf("conflicts = %v, want none", conflicts)
		}
	})

	t.Run("differing record is a conflict and the later one wins", func(t *testing.T) {
		m := foto.FolderMap{
			7: {Name: "/Shared", OwnerID: 2},
			9: {Name: "/Other", OwnerID: 2},
		}
		conflicts := m.Merge(foto.FolderMap{
			9: {Name: "/Other", OwnerID: 4},
			7: {Name: "/Renamed", OwnerID: 2},
		})

		if len(conflicts) != 2 || conflicts[0] != 7 || conflicts[1] != 9 {
			t.Errorf("conflicts = %v, want [7 9]", conflicts)
		}
		if m[7].Name != "/Renamed" {
			t.Errorf("entry 7 name = %q, want %q", m[7].Name, "/Renamed")
		}
		if m[9].OwnerID != 4 {
			t.Errorf("entry 9 owner = %d, want 4", m[9].OwnerID)
		}
	})
}

func TestSpace_String(t *testing.T) {
	if got := foto.SpacePersonal.String(); got != "personal" {
		t.Errorf("SpacePersonal = %q, want %q", got, "personal")
	}
	if got := foto.SpaceShared.String(); got != "shared" {
		t.Errorf("SpaceShared = %q, want %q", got, "shared")
	}
}
