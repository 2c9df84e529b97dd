package gazetteer

// Regions is the official list of the 12 Moroccan regions, in their
// administrative order. Enrichment output is validated against it.
var Regions = []string{
	"Tanger-Tétouan-Al Hoceïma",
	"Oriental",
	"Fès-Meknès",
	"Rabat-Salé-Kénitra",
	"Béni Mellal-Khénifra",
	"Casablanca-Settat",
	"Marrakech-Safi",
	"Drâa-Tafilalet",
	"Souss-Massa",
	"Guelmim-Oued Noun",
	"Laâyoune-Sakia El Hamra",
	"Dakhla-Oued Ed-Dahab",
}

// builtin is the hand-curated reference set: the cities that actually
// occur in the harvested health-facility data, with their region and
// province. Extend via a CSV override rather than editing this table.
var builtin = []Entry{
	{"TANGER", "Tanger-Tétouan-Al Hoceïma", "Tanger-Assilah"},
	{"TETOUAN", "Tanger-Tétouan-Al Hoceïma", "Tétouan"},
	{"AL HOCEIMA", "Tanger-Tétouan-Al Hoceïma", "Al Hoceïma"},
	{"LARACHE", "Tanger-Tétouan-Al Hoceïma", "Larache"},
	{"KSAR EL KEBIR", "Tanger-Tétouan-Al Hoceïma", "Larache"},
	{"CHEFCHAOUEN", "Tanger-Tétouan-Al Hoceïma", "Chefchaouen"},
	{"OUEZZANE", "Tanger-Tétouan-Al Hoceïma", "Ouezzane"},
	{"FNIDEQ", "Tanger-Tétouan-Al Hoceïma", "M'diq-Fnideq"},
	{"MDIQ", "Tanger-Tétouan-Al Hoceïma", "M'diq-Fnideq"},
	{"ASSILAH", "Tanger-Tétouan-Al Hoceïma", "Tanger-Assilah"},

	{"OUJDA", "Oriental", "Oujda-Angad"},
	{"NADOR", "Oriental", "Nador"},
	{"BERKANE", "Oriental", "Berkane"},
	{"TAOURIRT", "Oriental", "Taourirt"},
	{"JERADA", "Oriental", "Jerada"},
	{"GUERCIF", "Oriental", "Guercif"},
	{"BOUARFA", "Oriental", "Figuig"},
	{"SAIDIA", "Oriental", "Berkane"},

	{"FES", "Fès-Meknès", "Fès"},
	{"MEKNES", "Fès-Meknès", "Meknès"},
	{"SEFROU", "Fès-Meknès", "Sefrou"},
	{"TAZA", "Fès-Meknès", "Taza"},
	{"IFRANE", "Fès-Meknès", "Ifrane"},
	{"AZROU", "Fès-Meknès", "Ifrane"},
	{"EL HAJEB", "Fès-Meknès", "El Hajeb"},
	{"TAOUNATE", "Fès-Meknès", "Taounate"},
	{"MOULAY YACOUB", "Fès-Meknès", "Moulay Yacoub"},

	{"RABAT", "Rabat-Salé-Kénitra", "Rabat"},
	{"SALE", "Rabat-Salé-Kénitra", "Salé"},
	{"TEMARA", "Rabat-Salé-Kénitra", "Skhirate-Témara"},
	{"SKHIRATE", "Rabat-Salé-Kénitra", "Skhirate-Témara"},
	{"KENITRA", "Rabat-Salé-Kénitra", "Kénitra"},
	{"SIDI KACEM", "Rabat-Salé-Kénitra", "Sidi Kacem"},
	{"SIDI SLIMANE", "Rabat-Salé-Kénitra", "Sidi Slimane"},
	{"KHEMISSET", "Rabat-Salé-Kénitra", "Khémisset"},

	{"BENI MELLAL", "Béni Mellal-Khénifra", "Béni Mellal"},
	{"KHENIFRA", "Béni Mellal-Khénifra", "Khénifra"},
	{"KHOURIBGA", "Béni Mellal-Khénifra", "Khouribga"},
	{"FQUIH BEN SALAH", "Béni Mellal-Khénifra", "Fquih Ben Salah"},
	{"AZILAL", "Béni Mellal-Khénifra", "Azilal"},
	{"KASBA TADLA", "Béni Mellal-Khénifra", "Béni Mellal"},

	{"CASABLANCA", "Casablanca-Settat", "Casablanca"},
	{"MOHAMMEDIA", "Casablanca-Settat", "Mohammedia"},
	{"EL JADIDA", "Casablanca-Settat", "El Jadida"},
	{"SETTAT", "Casablanca-Settat", "Settat"},
	{"BERRECHID", "Casablanca-Settat", "Berrechid"},
	{"BENSLIMANE", "Casablanca-Settat", "Benslimane"},
	{"MEDIOUNA", "Casablanca-Settat", "Médiouna"},
	{"NOUACEUR", "Casablanca-Settat", "Nouaceur"},
	{"BOUZNIKA", "Casablanca-Settat", "Benslimane"},

	{"MARRAKECH", "Marrakech-Safi", "Marrakech"},
	{"SAFI", "Marrakech-Safi", "Safi"},
	{"ESSAOUIRA", "Marrakech-Safi", "Essaouira"},
	{"EL KELAA DES SRAGHNA", "Marrakech-Safi", "El Kelâa des Sraghna"},
	{"CHICHAOUA", "Marrakech-Safi", "Chichaoua"},
	{"YOUSSOUFIA", "Marrakech-Safi", "Youssoufia"},
	{"BEN GUERIR", "Marrakech-Safi", "Rehamna"},

	{"ERRACHIDIA", "Drâa-Tafilalet", "Errachidia"},
	{"OUARZAZATE", "Drâa-Tafilalet", "Ouarzazate"},
	{"MIDELT", "Drâa-Tafilalet", "Midelt"},
	{"TINGHIR", "Drâa-Tafilalet", "Tinghir"},
	{"ZAGORA", "Drâa-Tafilalet", "Zagora"},

	{"AGADIR", "Souss-Massa", "Agadir-Ida-Ou-Tanane"},
	{"INEZGANE", "Souss-Massa", "Inezgane-Aït Melloul"},
	{"TAROUDANT", "Souss-Massa", "Taroudant"},
	{"TIZNIT", "Souss-Massa", "Tiznit"},
	{"OULED TEIMA", "Souss-Massa", "Taroudant"},
	{"TATA", "Souss-Massa", "Tata"},

	{"GUELMIM", "Guelmim-Oued Noun", "Guelmim"},
	{"TAN TAN", "Guelmim-Oued Noun", "Tan-Tan"},
	{"SIDI IFNI", "Guelmim-Oued Noun", "Sidi Ifni"},

	{"LAAYOUNE", "Laâyoune-Sakia El Hamra", "Laâyoune"},
	{"BOUJDOUR", "Laâyoune-Sakia El Hamra", "Boujdour"},
	{"ES SEMARA", "Laâyoune-Sakia El Hamra", "Es-Semara"},
	{"TARFAYA", "Laâyoune-Sakia El Hamra", "Tarfaya"},

	{"DAKHLA", "Dakhla-Oued Ed-Dahab", "Oued Ed-Dahab"},
	{"AOUSSERD", "Dakhla-Oued Ed-Dahab", "Aousserd"},
}
