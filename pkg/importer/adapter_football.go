package importer

import "github.com/gigcompliance/anj-resolver/pkg/sheet"

func init() {
	Register(&anjAdapter{
		id:          "anj-football",
		sport:       "Football",
		tab:         "Football",
		description: "ANJ competitions autorisees - Football",
		keywords: []sheet.Keyword{
			{From: "olympic games", To: "jeux olympiques"},
			{From: "european championship", To: "championnat d'europe"},
			{From: "world cup", To: "coupe du monde"},
		},
	})
}
