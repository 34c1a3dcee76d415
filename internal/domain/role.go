package domain

// Role is a persona archetype a participant can be assigned.
type Role struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	EnglishTitle string `json:"englishTitle"`
	Description  string `json:"description"`
}

// catalog is the fixed role set. Index order is the fallback assignment order.
var catalog = []Role{
	{ID: "1", Title: "開拓者", EnglishTitle: "Pioneer", Description: "新しい道を切り開く人"},
	{ID: "2", Title: "灯台守", EnglishTitle: "Lighthouse Keeper", Description: "チームの進むべき道を照らす人"},
	{ID: "3", Title: "地図職人", EnglishTitle: "Cartographer", Description: "議論の全体像を描き、整理する人"},
	{ID: "4", Title: "調停者", EnglishTitle: "Mediator", Description: "意見の対立を調整し、合意を形成する人"},
	{ID: "5", Title: "記録者", EnglishTitle: "Chronicler", Description: "チームの歩みを記録し、記憶する人"},
	{ID: "6", Title: "旅人", EnglishTitle: "Traveler", Description: "自由な視点で、新しい風を吹き込む人"},
	{ID: "7", Title: "発明家", EnglishTitle: "Inventor", Description: "具体的な解決策や仕組みを生み出す人"},
}

// RoleCatalog returns a copy of the fixed role set.
func RoleCatalog() []Role {
	out := make([]Role, len(catalog))
	copy(out, catalog)
	return out
}

// RoleByID looks up a catalog role.
func RoleByID(id string) (Role, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}
