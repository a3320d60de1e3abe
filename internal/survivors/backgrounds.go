package survivors

// Background is a survivor's former life, setting skills and quirks.
type Background struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Skills      map[string]int `json:"skills"`
	Quirks      []string       `json:"quirks"`
}

func backgrounds() []Background {
	return []Background{
		{
			Name:        "PTA Mom",
			Description: "Former helicopter parent with organizational skills",
			Skills:      map[string]int{"bureaucracy": 8, "cooking": 6, "repair": 3, "combat": 2},
			Quirks:      []string{"Believes Birds Aren't Real", "Obsessed with HOA Rules"},
		},
		{
			Name:        "Plumber",
			Description: "Blue-collar worker with practical skills",
			Skills:      map[string]int{"repair": 9, "tinkering": 7, "bureaucracy": 2, "cooking": 4},
			Quirks:      []string{"Suspicious of Government", "Hoards Pipe Fittings"},
		},
		{
			Name:        "Drive-Thru Cashier",
			Description: "Fast food veteran with customer service trauma",
			Skills:      map[string]int{"cooking": 8, "bureaucracy": 5, "combat": 3, "repair": 2},
			Quirks:      []string{"Addicted to McRonald's Sauce", "Hates the Sound of Beeping"},
		},
		{
			Name:        "Mall Cop",
			Description: "Security guard with delusions of authority",
			Skills:      map[string]int{"combat": 7, "bureaucracy": 6, "repair": 4, "cooking": 1},
			Quirks:      []string{"Post-Apocalyptic Mall Cop", "Believes in Conspiracy Theories"},
		},
		{
			Name:        "Former Senator",
			Description: "Disgraced politician with hidden connections",
			Skills:      map[string]int{"bureaucracy": 10, "combat": 1, "cooking": 2, "repair": 3},
			Quirks:      []string{"Government Sleeper Agent", "Paranoid About Surveillance"},
		},
		{
			Name:        "Suburban Dad",
			Description: "Weekend warrior with a garage full of tools",
			Skills:      map[string]int{"repair": 6, "tinkering": 8, "cooking": 5, "combat": 4},
			Quirks:      []string{"Obsessed with Lawn Care", "Believes in Chemtrails"},
		},
		{
			Name:        "Soccer Mom",
			Description: "Minivan-driving multitasker",
			Skills:      map[string]int{"bureaucracy": 7, "cooking": 7, "repair": 2, "combat": 5},
			Quirks:      []string{"Road Rage Issues", "Hoards Snack Foods"},
		},
		{
			Name:        "IT Support",
			Description: "Tech worker who's seen too much",
			Skills:      map[string]int{"tinkering": 9, "repair": 6, "bureaucracy": 4, "cooking": 2},
			Quirks:      []string{"Knows About Government Backdoors", "Caffeine Dependent"},
		},
	}
}

// defaultNames are handed out to the founding survivors in order.
var defaultNames = []string{"Karen", "Bob", "Dave", "Linda", "Mike", "Susan", "Jim", "Nancy"}
