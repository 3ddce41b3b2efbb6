package importer

import "github.com/gigcompliance/anj-resolver/pkg/sheet"

func init() {
	Register(&anjAdapter{
		id:          "anj-golf",
		sport:       "Golf",
		tab:         "Golf",
		description: "ANJ competitions autorisees - Golf",
		keywords: []sheet.Keyword{
			{From: "olympic games", To: "jeux olympiques"},
			{From: "olympic", To: "jeux olympiques"},
		},
	})
}
