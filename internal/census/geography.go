package census

// Louisiana parish FIPS codes, keyed by parish name as it appears (minus the
// " Parish, Louisiana" suffix) in Census API responses.
var parishFIPS = map[string]string{
	"Acadia":               "001",
	"Allen":                "003",
	"Ascension":            "005",
	"Assumption":           "007",
	"Avoyelles":            "009",
	"Beauregard":           "011",
	"Bienville":            "013",
	"Bossier":              "015",
	"Caddo":                "017",
	"Calcasieu":            "019",
	"Caldwell":             "021",
	"Cameron":              "023",
	"Catahoula":            "025",
	"Claiborne":            "027",
	"Concordia":            "029",
	"De Soto":              "031",
	"East Baton Rouge":     "033",
	"East Carroll":         "035",
	"East Feliciana":       "037",
	"Evangeline":           "039",
	"Franklin":             "041",
	"Grant":                "043",
	"Iberia":               "045",
	"Iberville":            "047",
	"Jackson":              "049",
	"Jefferson":            "051",
	"Jefferson Davis":      "053",
	"Lafayette":            "055",
	"Lafourche":            "057",
	"LaSalle":              "059",
	"Lincoln":              "061",
	"Livingston":           "063",
	"Madison":              "065",
	"Morehouse":            "067",
	"Natchitoches":         "069",
	"Orleans":              "071",
	"Ouachita":             "073",
	"Plaquemines":          "075",
	"Pointe Coupee":        "077",
	"Rapides":              "079",
	"Red River":            "081",
	"Richland":             "083",
	"Sabine":               "085",
	"St. Bernard":          "087",
	"St. Charles":          "089",
	"St. Helena":           "091",
	"St. James":            "093",
	"St. John the Baptist": "095",
	"St. Landry":           "097",
	"St. Martin":           "099",
	"St. Mary":             "101",
	"St. Tammany":          "103",
	"Tangipahoa":           "105",
	"Tensas":               "107",
	"Terrebonne":           "109",
	"Union":                "111",
	"Vermilion":            "113",
	"Vernon":               "115",
	"Washington":           "117",
	"Webster":              "119",
	"West Baton Rouge":     "121",
	"West Carroll":         "123",
	"West Feliciana":       "125",
	"Winn":                 "127",
}

// troopCoverage maps each LSP troop to the parishes it covers. St. James and
// St. John the Baptist straddle two troops each and are counted 50/50.
var troopCoverage = map[string][]string{
	"Troop A": {"Ascension", "East Baton Rouge", "East Feliciana", "Iberville",
		"Livingston", "Pointe Coupee", "West Baton Rouge", "West Feliciana",
		"St. James"},
	"Troop B": {"St. Charles", "Plaquemines", "St. Bernard", "Jefferson",
		"St. John the Baptist"},
	"Troop C": {"Assumption", "Lafourche", "Terrebonne",
		"St. James", "St. John the Baptist"},
	"Troop D": {"Allen", "Beauregard", "Calcasieu", "Cameron", "Jefferson Davis"},
	"Troop E": {"Avoyelles", "Catahoula", "Concordia", "Grant", "LaSalle",
		"Natchitoches", "Rapides", "Sabine", "Vernon", "Winn"},
	"Troop F": {"Union", "West Carroll", "East Carroll", "Morehouse", "Lincoln",
		"Ouachita", "Richland", "Madison", "Jackson", "Caldwell", "Tensas",
		"Franklin"},
	"Troop G": {"Caddo", "Bossier", "De Soto", "Webster", "Claiborne", "Bienville",
		"Red River"},
	"Troop I": {"Evangeline", "St. Landry", "Acadia", "Lafayette", "St. Martin",
		"Vermilion", "Iberia", "St. Mary"},
	"Troop L": {"St. Helena", "St. Tammany", "Tangipahoa", "Washington"},
	"Troop NOLA": {"Orleans"},
}

// splitParishes are counted at half weight for each covering troop.
var splitParishes = map[string]bool{
	"St. James":            true,
	"St. John the Baptist": true,
}

// troopOrder fixes the output ordering of the demographics table.
var troopOrder = []string{
	"Troop A", "Troop B", "Troop C", "Troop D", "Troop E",
	"Troop F", "Troop G", "Troop I", "Troop L", "Troop NOLA",
}
