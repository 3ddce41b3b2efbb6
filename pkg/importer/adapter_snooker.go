package importer

import "github.com/gigcompliance/anj-resolver/pkg/sheet"

func init() {
	Register(&anjAdapter{
		id:          "anj-snooker",
		sport:       "Snooker",
		tab:         "Snooker",
		description: "ANJ competitions autorisees - Snooker",
		keywords: []sheet.Keyword{
			{From: "world snooker tour", To: "wst"},
			{From: "world championship", To: "championnat du monde"},
			{From: "snooker", To: "billard"},
		},
	})
}
