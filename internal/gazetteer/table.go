package gazetteer

// Tunisian postal codes grouped by governorate (raw registry key) and
// delegation. Keys stay strings so leading zeros survive.
var postalTable = map[string]map[string][]string{
	"TUNIS": {
		"Tunis":         {"1000", "1001", "1002", "1003", "1004", "1005", "1006", "1007", "1008", "1009"},
		"Le Bardo":      {"2000"},
		"Carthage":      {"2016"},
		"La Marsa":      {"2078"},
		"Sidi Bou Said": {"2026"},
		"La Goulette":   {"2060"},
		"Le Kram":       {"2015"},
	},
	"ARIANA": {
		"Ariana Ville": {"2080"},
		"La Soukra":    {"2036"},
		"Raoued":       {"2056"},
		"Ettadhamen":   {"2041"},
	},
	"BEN AROUS": {
		"Ben Arous":  {"2013"},
		"Rades":      {"2040"},
		"Hammam Lif": {"2050"},
		"Ezzahra":    {"2034"},
		"Mornag":     {"2090"},
		"Fouchana":   {"2082"},
	},
	"MANOUBA": {
		"Manouba":      {"2010"},
		"Oued Ellil":   {"2021"},
		"Douar Hicher": {"2086"},
		"Tebourba":     {"1130"},
	},
	"NABEUL": {
		"Nabeul":        {"8000"},
		"Hammamet":      {"8050"},
		"Korba":         {"8070"},
		"Kelibia":       {"8090"},
		"Grombalia":     {"8030"},
		"Menzel Temime": {"8080"},
	},
	"ZAGHOUAN": {
		"Zaghouan": {"1100"},
		"El Fahs":  {"1140"},
	},
	"BIZERTE": {
		"Bizerte":          {"7000", "7001"},
		"Menzel Bourguiba": {"7050"},
		"Mateur":           {"7030"},
		"Ras Jebel":        {"7070"},
	},
	"BEJA": {
		"Beja":          {"9000"},
		"Medjez El Bab": {"9070"},
		"Testour":       {"9060"},
		"Nefza":         {"9010"},
	},
	"JENDOUBA": {
		"Jendouba":   {"8100"},
		"Tabarka":    {"8110"},
		"Bou Salem":  {"8170"},
		"Ghardimaou": {"8160"},
	},
	"KEF": {
		"Le Kef":     {"7100"},
		"Dahmani":    {"7170"},
		"Tajerouine": {"7150"},
	},
	"SILIANA": {
		"Siliana":   {"6100"},
		"Makthar":   {"6140"},
		"Bou Arada": {"6180"},
	},
	"SOUSSE": {
		"Sousse":        {"4000", "4001", "4002"},
		"Msaken":        {"4070"},
		"Hammam Sousse": {"4011"},
		"Kalaa Kebira":  {"4060"},
		"Enfidha":       {"4030"},
	},
	"MONASTIR": {
		"Monastir":    {"5000"},
		"Moknine":     {"5050"},
		"Ksar Hellal": {"5070"},
		"Jemmal":      {"5020"},
		"Sahline":     {"5012"},
	},
	"MAHDIA": {
		"Mahdia":      {"5100"},
		"Ksour Essef": {"5180"},
		"Chebba":      {"5170"},
		"El Jem":      {"5160"},
	},
	"SFAX": {
		"Sfax":           {"3000", "3001", "3002", "3003"},
		"Sakiet Ezzit":   {"3021"},
		"Sakiet Eddaier": {"3011"},
		"Mahres":         {"3060"},
		"Kerkennah":      {"3070"},
	},
	"KAIROUAN": {
		"Kairouan": {"3100"},
		"Haffouz":  {"3130"},
		"Sbikha":   {"3110"},
	},
	"KASSERINE": {
		"Kasserine": {"1200"},
		"Sbeitla":   {"1250"},
		"Feriana":   {"1240"},
		"Thala":     {"1210"},
	},
	"SIDI BOUZID": {
		"Sidi Bouzid": {"9100"},
		"Regueb":      {"9170"},
		"Meknassy":    {"9140"},
	},
	"GABES": {
		"Gabes":    {"6000", "6001"},
		"Mareth":   {"6080"},
		"El Hamma": {"6020"},
		"Matmata":  {"6070"},
	},
	"MEDENINE": {
		"Medenine":          {"4100"},
		"Djerba Houmt Souk": {"4180"},
		"Djerba Midoun":     {"4116"},
		"Zarzis":            {"4170"},
		"Ben Gardane":       {"4160"},
	},
	"TATAOUINE": {
		"Tataouine":  {"3200"},
		"Ghomrassen": {"3220"},
		"Remada":     {"3240"},
	},
	"GAFSA": {
		"Gafsa":    {"2100"},
		"Metlaoui": {"2130"},
		"Redeyef":  {"2120"},
	},
	"TOZEUR": {
		"Tozeur":  {"2200"},
		"Nefta":   {"2240"},
		"Degache": {"2260"},
	},
	"KEBILI": {
		"Kebili":     {"4200"},
		"Douz":       {"4260"},
		"Souk Lahad": {"4222"},
	},
}

// Registry keys are bare uppercase; carriers expect the accented canonical
// spelling, so every lookup passes through this map.
var canonicalName = map[string]string{
	"ARIANA":      "Ariana",
	"BEJA":        "Béja",
	"BEN AROUS":   "Béni Arous",
	"BIZERTE":     "Bizerte",
	"GABES":       "Gabès",
	"GAFSA":       "Gafsa",
	"JENDOUBA":    "Jendouba",
	"KAIROUAN":    "Kairouan",
	"KASSERINE":   "Kasserine",
	"KEBILI":      "Kébili",
	"KEF":         "Le Kef",
	"MAHDIA":      "Mahdia",
	"MANOUBA":     "Manouba",
	"MEDENINE":    "Médenine",
	"MONASTIR":    "Monastir",
	"NABEUL":      "Nabeul",
	"SFAX":        "Sfax",
	"SIDI BOUZID": "Sidi Bouzid",
	"SILIANA":     "Siliana",
	"SOUSSE":      "Sousse",
	"TATAOUINE":   "Tataouine",
	"TOZEUR":      "Tozeur",
	"TUNIS":       "Tunis",
	"ZAGHOUAN":    "Zaghouan",
}
