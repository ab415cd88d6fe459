package catalog

// FieldKind tells an editor how to present and parse a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindRange    FieldKind = "range"
	KindColor    FieldKind = "color"
	KindImage    FieldKind = "image"
)

// FieldSpec describes one editable field of a variant record.
type FieldSpec struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Kind  FieldKind `json:"kind"`
	Min   int       `json:"min,omitempty"`
	Max   int       `json:"max,omitempty"`
}

var fieldSets = map[string][]FieldSpec{
	"match": {
		{Key: "homeTeam", Label: "Équipe Domicile", Kind: KindText},
		{Key: "awayTeam", Label: "Équipe Extérieur", Kind: KindText},
		{Key: "date", Label: "Date", Kind: KindText},
		{Key: "time", Label: "Heure", Kind: KindText},
		{Key: "stadium", Label: "Stade", Kind: KindText},
		{Key: "textSize", Label: "Taille texte", Kind: KindRange, Min: 40, Max: 120},
		{Key: "bgImage", Label: "Image de fond (optionnel)", Kind: KindImage},
		{Key: "color1", Label: "Couleur 1", Kind: KindColor},
		{Key: "color2", Label: "Couleur 2 (gradient)", Kind: KindColor},
	},
	"score": {
		{Key: "homeTeam", Label: "Équipe Domicile", Kind: KindText},
		{Key: "awayTeam", Label: "Équipe Extérieur", Kind: KindText},
		{Key: "homeScore", Label: "Score Domicile", Kind: KindNumber, Min: 0, Max: 999},
		{Key: "awayScore", Label: "Score Extérieur", Kind: KindNumber, Min: 0, Max: 999},
		{Key: "competition", Label: "Compétition", Kind: KindText},
		{Key: "date", Label: "Date", Kind: KindText},
		{Key: "textSize", Label: "Taille texte", Kind: KindRange, Min: 24, Max: 72},
		{Key: "homeLogo", Label: "Logo Domicile", Kind: KindImage},
		{Key: "awayLogo", Label: "Logo Extérieur", Kind: KindImage},
		{Key: "color1", Label: "Couleur 1", Kind: KindColor},
		{Key: "color2", Label: "Couleur 2", Kind: KindColor},
	},
	"player": {
		{Key: "playerName", Label: "Nom du joueur", Kind: KindText},
		{Key: "number", Label: "Numéro", Kind: KindText},
		{Key: "position", Label: "Position", Kind: KindText},
		{Key: "stats", Label: "Statistiques", Kind: KindText},
		{Key: "team", Label: "Équipe", Kind: KindText},
		{Key: "textSize", Label: "Taille texte", Kind: KindRange, Min: 40, Max: 100},
		{Key: "playerPhoto", Label: "Photo du joueur", Kind: KindImage},
		{Key: "color1", Label: "Couleur 1", Kind: KindColor},
		{Key: "color2", Label: "Couleur 2", Kind: KindColor},
	},
	"ranking": {
		{Key: "title", Label: "Titre", Kind: KindText},
		{Key: "competition", Label: "Compétition", Kind: KindText},
		{Key: "teams", Label: "Classement (une ligne par équipe)", Kind: KindTextArea},
		{Key: "textSize", Label: "Taille texte", Kind: KindRange, Min: 20, Max: 48},
		{Key: "color1", Label: "Couleur 1", Kind: KindColor},
		{Key: "color2", Label: "Couleur 2", Kind: KindColor},
	},
	"upnext": {
		{Key: "numMatches", Label: "Nombre de matchs", Kind: KindRange, Min: 2, Max: 5},
		{Key: "colorHeader", Label: "Couleur en-tête", Kind: KindColor},
		{Key: "colorPanel", Label: "Couleur panneau", Kind: KindColor},
		{Key: "colorText", Label: "Couleur texte", Kind: KindColor},
	},
}

// MatchEntryFields describes the per-entry fields of the fixture list.
var MatchEntryFields = []FieldSpec{
	{Key: "homeTeam", Label: "Domicile", Kind: KindText},
	{Key: "awayTeam", Label: "Extérieur", Kind: KindText},
	{Key: "date", Label: "Date", Kind: KindText},
	{Key: "time", Label: "Heure", Kind: KindText},
	{Key: "stadium", Label: "Stade", Kind: KindText},
	{Key: "homeLogo", Label: "Logo Dom.", Kind: KindImage},
	{Key: "awayLogo", Label: "Logo Ext.", Kind: KindImage},
}

// Fields returns the field set of a variant, or nil when the variant is unknown.
func Fields(variant string) []FieldSpec {
	return fieldSets[variant]
}

// Field looks up a single field of a variant.
func Field(variant, key string) (FieldSpec, bool) {
	for _, f := range fieldSets[variant] {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}
