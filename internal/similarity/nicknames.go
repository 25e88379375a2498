package similarity

// Curated nickname groups. Two names in the same group compare at
// NicknameScore rather than falling through to edit distance, so
// "Robert" vs "Bob" does not read as a wholly different person.
var nicknameGroups = [][]string{
	{"robert", "rob", "bob", "bobby", "bert"},
	{"william", "will", "bill", "billy", "liam"},
	{"james", "jim", "jimmy", "jamie"},
	{"john", "jon", "jack", "johnny"},
	{"jonathan", "jon", "jonny"},
	{"michael", "mike", "mikey", "mick"},
	{"richard", "rich", "rick", "ricky", "dick"},
	{"thomas", "tom", "tommy"},
	{"charles", "charlie", "chuck", "chas"},
	{"christopher", "chris", "topher"},
	{"daniel", "dan", "danny"},
	{"matthew", "matt", "matty"},
	{"anthony", "tony"},
	{"steven", "steve", "stevie"},
	{"stephen", "steve", "stevie"},
	{"edward", "ed", "eddie", "ted", "teddy", "ned"},
	{"joseph", "joe", "joey"},
	{"david", "dave", "davey"},
	{"andrew", "andy", "drew"},
	{"nicholas", "nick", "nicky"},
	{"benjamin", "ben", "benny"},
	{"samuel", "sam", "sammy"},
	{"alexander", "alex", "al", "xander"},
	{"gregory", "greg"},
	{"timothy", "tim", "timmy"},
	{"kenneth", "ken", "kenny"},
	{"lawrence", "larry"},
	{"ronald", "ron", "ronnie"},
	{"donald", "don", "donnie"},
	{"raymond", "ray"},
	{"gerald", "gerry", "jerry"},
	{"frederick", "fred", "freddie"},
	{"henry", "hank", "harry"},
	{"margaret", "maggie", "meg", "peggy", "marge"},
	{"elizabeth", "liz", "beth", "betsy", "eliza", "betty", "lizzie"},
	{"katherine", "kate", "katie", "kathy", "kat"},
	{"catherine", "cathy", "kate", "cat"},
	{"jennifer", "jen", "jenny"},
	{"jessica", "jess", "jessie"},
	{"patricia", "pat", "patty", "tricia", "trish"},
	{"susan", "sue", "susie", "suzy"},
	{"deborah", "deb", "debbie"},
	{"barbara", "barb", "barbie"},
	{"rebecca", "becky", "becca"},
	{"victoria", "vicky", "tori"},
	{"kimberly", "kim"},
	{"michelle", "shelly"},
	{"christina", "chris", "tina", "christy"},
	{"stephanie", "steph"},
	{"samantha", "sam", "sammy"},
	{"alexandra", "alex", "lexi", "sandra"},
	{"sandra", "sandy"},
	{"dorothy", "dot", "dottie"},
	{"florence", "flo"},
	{"abigail", "abby", "gail"},
	{"amanda", "mandy"},
	{"melissa", "mel", "missy"},
	{"nancy", "nan"},
	{"virginia", "ginny"},
	{"josephine", "jo", "josie"},
	{"theodore", "ted", "teddy", "theo"},
	{"leonard", "leo", "lenny"},
	{"eugene", "gene"},
	{"walter", "walt", "wally"},
	{"arthur", "art", "artie"},
	{"albert", "al", "bert"},
	{"francis", "frank", "fran"},
	{"frances", "fran", "frannie"},
}

// nicknameIndex maps each known name to the ids of every group it belongs to
var nicknameIndex = buildNicknameIndex()

func buildNicknameIndex() map[string][]int {
	index := make(map[string][]int)
	for i, group := range nicknameGroups {
		for _, name := range group {
			index[name] = append(index[name], i)
		}
	}
	return index
}

// isNicknamePair reports whether two canonical names share a nickname group
func isNicknamePair(a, b string) bool {
	groupsA, ok := nicknameIndex[a]
	if !ok {
		return false
	}
	groupsB, ok := nicknameIndex[b]
	if !ok {
		return false
	}
	for _, ga := range groupsA {
		for _, gb := range groupsB {
			if ga == gb {
				return true
			}
		}
	}
	return false
}
