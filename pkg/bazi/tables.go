package bazi

// Element is one of the five classical elements.
type Element string

const (
	Wood  Element = "Wood"
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Metal Element = "Metal"
	Water Element = "Water"
)

// Elements lists the five elements in traditional generation order.
var Elements = []Element{Wood, Fire, Earth, Metal, Water}

// Polarity is the yin/yang classification of a stem or branch.
type Polarity string

const (
	Yin  Polarity = "Yin"
	Yang Polarity = "Yang"
)

// Stem is one of the ten heavenly stems. Each stem carries a fixed
// element and polarity.
type Stem struct {
	Name     string   `json:"stem"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"yin_yang"`
}

// Branch is one of the twelve earthly branches. Each branch carries a
// fixed element, polarity, and one to three hidden stems.
type Branch struct {
	Name        string
	Element     Element
	Polarity    Polarity
	HiddenStems []string
}

// HeavenlyStems is the ordered ten-stem cycle. Index with value % 10.
var HeavenlyStems = []Stem{
	{Name: "Jia", Element: Wood, Polarity: Yang},
	{Name: "Yi", Element: Wood, Polarity: Yin},
	{Name: "Bing", Element: Fire, Polarity: Yang},
	{Name: "Ding", Element: Fire, Polarity: Yin},
	{Name: "Wu", Element: Earth, Polarity: Yang},
	{Name: "Ji", Element: Earth, Polarity: Yin},
	{Name: "Geng", Element: Metal, Polarity: Yang},
	{Name: "Xin", Element: Metal, Polarity: Yin},
	{Name: "Ren", Element: Water, Polarity: Yang},
	{Name: "Gui", Element: Water, Polarity: Yin},
}

// EarthlyBranches is the ordered twelve-branch cycle. Index with value % 12.
var EarthlyBranches = []Branch{
	{Name: "Zi", Element: Water, Polarity: Yang, HiddenStems: []string{"Gui"}},
	{Name: "Chou", Element: Earth, Polarity: Yin, HiddenStems: []string{"Ji", "Xin", "Gui"}},
	{Name: "Yin", Element: Wood, Polarity: Yang, HiddenStems: []string{"Jia", "Bing", "Wu"}},
	{Name: "Mao", Element: Wood, Polarity: Yin, HiddenStems: []string{"Yi"}},
	{Name: "Chen", Element: Earth, Polarity: Yang, HiddenStems: []string{"Wu", "Yi", "Gui"}},
	{Name: "Si", Element: Fire, Polarity: Yin, HiddenStems: []string{"Bing", "Wu", "Geng"}},
	{Name: "Wu", Element: Fire, Polarity: Yang, HiddenStems: []string{"Ding", "Ji"}},
	{Name: "Wei", Element: Earth, Polarity: Yin, HiddenStems: []string{"Ji", "Ding", "Yi"}},
	{Name: "Shen", Element: Metal, Polarity: Yang, HiddenStems: []string{"Geng", "Ren", "Wu"}},
	{Name: "You", Element: Metal, Polarity: Yin, HiddenStems: []string{"Xin"}},
	{Name: "Xu", Element: Earth, Polarity: Yang, HiddenStems: []string{"Wu", "Xin", "Ding"}},
	{Name: "Hai", Element: Water, Polarity: Yin, HiddenStems: []string{"Ren", "Jia"}},
}

// stemsByName indexes HeavenlyStems for hidden stem resolution.
var stemsByName = func() map[string]Stem {
	m := make(map[string]Stem, len(HeavenlyStems))
	for _, s := range HeavenlyStems {
		m[s.Name] = s
	}
	return m
}()

// favorableByDayMaster maps a day-master element to its supporting elements.
var favorableByDayMaster = map[Element][]Element{
	Wood:  {Water, Wood},
	Fire:  {Wood, Fire},
	Earth: {Fire, Earth},
	Metal: {Earth, Metal},
	Water: {Metal, Water},
}

// unfavorableByDayMaster maps a day-master element to its conflicting elements.
var unfavorableByDayMaster = map[Element][]Element{
	Wood:  {Metal, Fire},
	Fire:  {Water, Metal},
	Earth: {Wood, Water},
	Metal: {Fire, Wood},
	Water: {Earth, Fire},
}
