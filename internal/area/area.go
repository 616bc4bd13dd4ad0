// Package area converts legacy ROM-format area files into the structured
// YAML world definition the game server loads.
package area

// Area is one converted zone.
type Area struct {
	Zone      string          `yaml:"zone"`
	Lifespan  int             `yaml:"lifespan"`
	StartRoom string          `yaml:"startRoom"`
	Rooms     map[string]Room `yaml:"rooms"`
	Mobs      map[string]Mob  `yaml:"mobs"`
	Items     map[string]Item `yaml:"items"`
}

// Room is one converted room.
type Room struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Exits       map[string]string `yaml:"exits"`
}

// Mob is one converted mobile with its spawn room.
type Mob struct {
	Name  string `yaml:"name"`
	Room  string `yaml:"room"`
	Tier  string `yaml:"tier"`
	Level int    `yaml:"level"`
}

// Item is one converted object.
type Item struct {
	DisplayName string `yaml:"displayName"`
	Description string `yaml:"description"`
	Keyword     string `yaml:"keyword"`
	Room        string `yaml:"room,omitempty"`
}
