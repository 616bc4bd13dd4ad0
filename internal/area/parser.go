package area

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// directionMap translates ROM exit digits to direction names.
var directionMap = map[byte]string{
	'0': "north",
	'1': "east",
	'2': "south",
	'3': "west",
	'4': "up",
	'5': "down",
}

var slugRE = regexp.MustCompile(`[^a-z0-9]+`)

// rawRoom, rawMob and rawItem carry parse results before vnum references are
// resolved against the room table.
type rawRoom struct {
	title       string
	description string
	exits       map[string]string // direction -> destination vnum
}

type rawEntity struct {
	name     string
	roomVnum string
}

// ParseFile parses one ROM .are file into a converted Area.
func ParseFile(path string) (*Area, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(decodeLatin1(data), "\n")

	rooms := map[string]*rawRoom{}
	mobs := map[string]*rawEntity{}
	items := map[string]*rawEntity{}
	var roomOrder []string

	i := 0
	for i < len(lines) {
		switch strings.TrimSpace(lines[i]) {
		case "#ROOMS":
			var parsed map[string]*rawRoom
			i, parsed, roomOrder = parseRooms(lines, i+1, roomOrder)
			for v, r := range parsed {
				rooms[v] = r
			}
		case "#MOBILES":
			var parsed map[string]string
			i, parsed = parseEntities(lines, i+1, "#MOBILES")
			for v, name := range parsed {
				mobs[v] = &rawEntity{name: name}
			}
		case "#OBJECTS":
			var parsed map[string]string
			i, parsed = parseEntities(lines, i+1, "#OBJECTS")
			for v, name := range parsed {
				items[v] = &rawEntity{name: name}
			}
		case "#RESETS":
			i = parseResets(lines, i+1, mobs, items)
		default:
			i++
		}
	}

	if len(rooms) == 0 {
		return nil, fmt.Errorf("no rooms found in %s", path)
	}

	return assemble(path, rooms, roomOrder, mobs, items), nil
}

// decodeLatin1 maps each byte to the equivalent rune; area files predate
// UTF-8 and use Latin-1.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func cleanTilde(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "~", ""))
}

// Slug lowercases text and collapses everything non-alphanumeric to
// underscores.
func Slug(text string) string {
	s := strings.Trim(slugRE.ReplaceAllString(strings.ToLower(text), "_"), "_")
	if s == "" {
		return "zone"
	}
	return s
}

func parseRooms(lines []string, i int, order []string) (int, map[string]*rawRoom, []string) {
	rooms := map[string]*rawRoom{}
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "#0" {
			return i + 1, rooms, order
		}
		if !strings.HasPrefix(line, "#") || line == "#ROOMS" {
			i++
			continue
		}

		vnum := line[1:]
		i++
		if i >= len(lines) {
			break
		}
		title := cleanTilde(lines[i])
		i++

		var desc []string
		for i < len(lines) && !strings.Contains(lines[i], "~") {
			desc = append(desc, strings.TrimRight(lines[i], " \t\r"))
			i++
		}
		if i < len(lines) {
			desc = append(desc, strings.TrimRight(strings.ReplaceAll(lines[i], "~", ""), " \t\r"))
			i++
		}

		i++ // flags/sector line
		exits := map[string]string{}
		for i < len(lines) {
			cur := strings.TrimSpace(lines[i])
			if len(cur) == 2 && cur[0] == 'D' && cur[1] >= '0' && cur[1] <= '9' {
				d := cur[1]
				i++
				for i < len(lines) && !strings.Contains(lines[i], "~") {
					i++
				}
				i++
				for i < len(lines) && !strings.Contains(lines[i], "~") {
					i++
				}
				i++
				if i < len(lines) {
					parts := strings.Fields(lines[i])
					if len(parts) >= 3 {
						dir, ok := directionMap[d]
						if !ok {
							dir = fmt.Sprintf("dir_%c", d)
						}
						exits[dir] = parts[2]
					}
					i++
				}
				continue
			}
			if cur == "S" {
				i++
				break
			}
			i++
		}

		var kept []string
		for _, l := range desc {
			if l != "" {
				kept = append(kept, l)
			}
		}
		description := strings.TrimSpace(strings.Join(kept, "\n"))
		if description == "" {
			description = "(no description)"
		}

		rooms[vnum] = &rawRoom{title: title, description: description, exits: exits}
		order = append(order, vnum)
	}
	return i, rooms, order
}

func parseEntities(lines []string, i int, section string) (int, map[string]string) {
	out := map[string]string{}
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "#0" {
			return i + 1, out
		}
		if !strings.HasPrefix(line, "#") || line == section {
			i++
			continue
		}
		vnum := line[1:]
		i++
		if i >= len(lines) {
			break
		}
		name := cleanTilde(lines[i])
		if name == "" {
			name = fmt.Sprintf("%s %s", strings.ToLower(strings.TrimPrefix(section, "#")), vnum)
		}
		out[vnum] = name
		for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
			i++
		}
	}
	return i, out
}

// parseResets walks the reset commands assigning spawn rooms: M places a
// mob, O places an object, G gives an object to the most recent placement's
// room.
func parseResets(lines []string, i int, mobs, items map[string]*rawEntity) int {
	var room string
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "S" {
			return i + 1
		}
		parts := strings.Fields(line)
		var code string
		if len(parts) > 0 {
			code = parts[0]
		}
		switch {
		case code == "M" && len(parts) >= 5:
			if m, ok := mobs[parts[2]]; ok {
				m.roomVnum = parts[4]
				room = parts[4]
			}
		case code == "O" && len(parts) >= 4:
			if it, ok := items[parts[2]]; ok {
				it.roomVnum = parts[3]
				room = parts[3]
			}
		case code == "G" && len(parts) >= 3 && room != "":
			if it, ok := items[parts[2]]; ok {
				it.roomVnum = room
			}
		}
		i++
	}
	return i
}

func assemble(path string, rooms map[string]*rawRoom, order []string, mobs, items map[string]*rawEntity) *Area {
	roomID := func(vnum string) string { return "r" + vnum }

	out := &Area{
		Zone:      Slug(stem(path)),
		Lifespan:  30,
		StartRoom: roomID(order[0]),
		Rooms:     map[string]Room{},
		Mobs:      map[string]Mob{},
		Items:     map[string]Item{},
	}

	for vnum, r := range rooms {
		exits := map[string]string{}
		for dir, target := range r.exits {
			if _, ok := rooms[target]; ok {
				exits[dir] = roomID(target)
			}
		}
		out.Rooms[roomID(vnum)] = Room{Title: r.title, Description: r.description, Exits: exits}
	}

	for vnum, m := range mobs {
		if _, ok := rooms[m.roomVnum]; !ok {
			continue
		}
		out.Mobs["m"+vnum] = Mob{Name: m.name, Room: roomID(m.roomVnum), Tier: "standard", Level: 1}
	}

	for vnum, it := range items {
		keyword := strings.SplitN(Slug(it.name), "_", 2)[0]
		if keyword == "" {
			keyword = "item" + vnum
		}
		entry := Item{
			DisplayName: it.name,
			Description: "Imported from ROM area file.",
			Keyword:     keyword,
		}
		if _, ok := rooms[it.roomVnum]; ok {
			entry.Room = roomID(it.roomVnum)
		}
		out.Items["i"+vnum] = entry
	}

	return out
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
