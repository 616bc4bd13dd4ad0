package area

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const fixtureArea = `#AREA
midgaard~

#MOBILES
#3060
rat~
the rat~
A small brown rat scurries about.
~
#0

#OBJECTS
#3010
lantern~
a brass lantern~
A brass lantern lies here.
~
#0

#ROOMS
#3001
Temple of Midgaard~
You are in the southern end of the temple hall.
~
0 0 0
D0
You see the temple gates.
~
~
0 0 3054
D2
~
~
0 0 3005
S
#3005
Temple Square~
A large square dominated by a fountain.
~
0 0 0
D0
~
~
0 0 3001
S
#0

#RESETS
M 0 3060 1 3001
G 1 3010 1
S
`

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(fixtureArea), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "midgaard.are")

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if parsed.Zone != "midgaard" {
		t.Errorf("expected zone 'midgaard', got '%s'", parsed.Zone)
	}
	if parsed.StartRoom != "r3001" {
		t.Errorf("expected start room 'r3001', got '%s'", parsed.StartRoom)
	}
	if parsed.Lifespan != 30 {
		t.Errorf("expected lifespan 30, got %d", parsed.Lifespan)
	}

	temple, ok := parsed.Rooms["r3001"]
	if !ok {
		t.Fatal("room r3001 missing")
	}
	if temple.Title != "Temple of Midgaard" {
		t.Errorf("expected title 'Temple of Midgaard', got '%s'", temple.Title)
	}
	if !strings.Contains(temple.Description, "southern end of the temple hall") {
		t.Errorf("unexpected description %q", temple.Description)
	}
	// Exit to 3054 points outside the area and must be dropped; the south
	// exit targets a real room.
	if len(temple.Exits) != 1 || temple.Exits["south"] != "r3005" {
		t.Errorf("expected exits map[south:r3005], got %v", temple.Exits)
	}

	square, ok := parsed.Rooms["r3005"]
	if !ok {
		t.Fatal("room r3005 missing")
	}
	if square.Exits["north"] != "r3001" {
		t.Errorf("expected north exit back to r3001, got %v", square.Exits)
	}

	mob, ok := parsed.Mobs["m3060"]
	if !ok {
		t.Fatal("mob m3060 missing")
	}
	if mob.Name != "rat" || mob.Room != "r3001" {
		t.Errorf("expected rat in r3001, got %+v", mob)
	}
	if mob.Tier != "standard" || mob.Level != 1 {
		t.Errorf("expected standard tier level 1, got %+v", mob)
	}

	item, ok := parsed.Items["i3010"]
	if !ok {
		t.Fatal("item i3010 missing")
	}
	if item.DisplayName != "lantern" || item.Keyword != "lantern" {
		t.Errorf("unexpected item %+v", item)
	}
	// The G reset gives the lantern to the room of the preceding M reset.
	if item.Room != "r3001" {
		t.Errorf("expected item in r3001, got %q", item.Room)
	}
}

func TestParseFileTruncatedAfterVnum(t *testing.T) {
	// Files cut off right after a vnum header must parse (or fail) cleanly
	// instead of panicking on a missing line.
	cases := map[string]string{
		"rooms":   "#ROOMS\n#3001",
		"mobiles": "#MOBILES\n#3060",
	}
	for name, content := range cases {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, name+".are")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ParseFile(path); err == nil {
			t.Errorf("%s: expected error for truncated file with no complete rooms", name)
		}
	}
}

func TestParseFileEmptyEntityNameFallback(t *testing.T) {
	content := `#MOBILES
#3060
~
#0

#ROOMS
#3001
Temple~
A hall.
~
0 0 0
S
#0

#RESETS
M 0 3060 1 3001
S
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fallback.are")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	mob, ok := parsed.Mobs["m3060"]
	if !ok {
		t.Fatal("mob m3060 missing")
	}
	if mob.Name != "mobiles 3060" {
		t.Errorf("expected fallback name 'mobiles 3060', got %q", mob.Name)
	}
}

func TestParseFileNoRooms(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.are")
	if err := os.WriteFile(path, []byte("#AREA\nempty~\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseFile(path); err == nil {
		t.Fatal("expected error for area without rooms")
	}
}

func TestConvertWritesYAML(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeFixture(t, inputDir, "midgaard.are")

	var out bytes.Buffer
	if err := Convert(inputDir, outputDir, &out); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	target := filepath.Join(outputDir, "midgaard.yaml")
	if !strings.Contains(out.String(), "wrote "+target) {
		t.Errorf("expected 'wrote' line, got %q", out.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	var reloaded Area
	if err := yaml.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if reloaded.Zone != "midgaard" || len(reloaded.Rooms) != 2 {
		t.Errorf("round trip lost data: %+v", reloaded)
	}
}

func TestConvertNoInputFiles(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	var out bytes.Buffer
	err := Convert(inputDir, outputDir, &out)
	if err == nil {
		t.Fatal("expected error when no .are files exist")
	}
	if !strings.Contains(err.Error(), "no .are files") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Midgaard", "midgaard"},
		{"The Shire!", "the_shire"},
		{"  ", "zone"},
		{"a brass lantern", "a_brass_lantern"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
