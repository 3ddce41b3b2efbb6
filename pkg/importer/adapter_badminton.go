package importer

import "github.com/gigcompliance/anj-resolver/pkg/sheet"

func init() {
	// Longer phrases first: substitutions run in order and
	// "world championships" must not be left with a trailing "s".
	Register(&anjAdapter{
		id:            "anj-badminton",
		sport:         "Badminton",
		tab:           "Badminton",
		description:   "ANJ competitions autorisees - Badminton",
		hasDiscipline: true,
		keywords: []sheet.Keyword{
			{From: "olympic games", To: "jeux olympiques"},
			{From: "european games", To: "jeux europeens"},
			{From: "european championship", To: "championnat d'europe"},
			{From: "world championships", To: "championnat du monde"},
			{From: "world championship", To: "championnat du monde"},
			{From: "olympic", To: "olympiques"},
		},
	})
}
