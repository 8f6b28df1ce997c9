package models

import "fmt"

const (
	Human      Race = "Human"
	Elf        Race = "Elf"
	Dwarf      Race = "Dwarf"
	Halfling   Race = "Halfling"
	Gnome      Race = "Gnome"
	HalfElf    Race = "Half-Elf"
	HalfOrc    Race = "Half-Orc"
	Tiefling   Race = "Tiefling"
	Dragonborn Race = "Dragonborn"
)

// Races offered during character creation.
var Races = []Race{Human, Elf, Dwarf, Halfling, Gnome, HalfElf, HalfOrc, Tiefling, Dragonborn}

const (
	Fighter   Class = "Fighter"
	Wizard    Class = "Wizard"
	Cleric    Class = "Cleric"
	Rogue     Class = "Rogue"
	Ranger    Class = "Ranger"
	Paladin   Class = "Paladin"
	Barbarian Class = "Barbarian"
	Bard      Class = "Bard"
	Druid     Class = "Druid"
	Monk      Class = "Monk"
	Sorcerer  Class = "Sorcerer"
	Warlock   Class = "Warlock"
	Artificer Class = "Artificer"
)

// Classes offered during character creation.
var Classes = []Class{Fighter, Wizard, Cleric, Rogue, Ranger, Paladin, Barbarian, Bard, Druid, Monk, Sorcerer, Warlock, Artificer}

// Backgrounds offered during character creation.
var Backgrounds = []Background{
	"Acolyte", "Charlatan", "Criminal", "Entertainer", "Folk Hero", "Guild Artisan",
	"Hermit", "Noble", "Outlander", "Sage", "Sailor", "Soldier", "Urchin",
}

// Skill is a named proficiency tied to one ability.
type Skill string

const (
	Acrobatics     Skill = "Acrobatics"
	AnimalHandling Skill = "Animal Handling"
	Arcana         Skill = "Arcana"
	Athletics      Skill = "Athletics"
	Deception      Skill = "Deception"
	History        Skill = "History"
	Insight        Skill = "Insight"
	Intimidation   Skill = "Intimidation"
	Investigation  Skill = "Investigation"
	Medicine       Skill = "Medicine"
	Nature         Skill = "Nature"
	Perception     Skill = "Perception"
	Performance    Skill = "Performance"
	Persuasion     Skill = "Persuasion"
	Religion       Skill = "Religion"
	SleightOfHand  Skill = "Sleight of Hand"
	Stealth        Skill = "Stealth"
	Survival       Skill = "Survival"
)

// Skills lists every skill in alphabetical order.
var Skills = []Skill{
	Acrobatics, AnimalHandling, Arcana, Athletics, Deception, History, Insight,
	Intimidation, Investigation, Medicine, Nature, Perception, Performance,
	Persuasion, Religion, SleightOfHand, Stealth, Survival,
}

var skillAbility = map[Skill]Ability{
	Athletics:      Strength,
	Acrobatics:     Dexterity,
	SleightOfHand:  Dexterity,
	Stealth:        Dexterity,
	Arcana:         Intelligence,
	History:        Intelligence,
	Investigation:  Intelligence,
	Nature:         Intelligence,
	Religion:       Intelligence,
	AnimalHandling: Wisdom,
	Insight:        Wisdom,
	Medicine:       Wisdom,
	Perception:     Wisdom,
	Survival:       Wisdom,
	Deception:      Charisma,
	Intimidation:   Charisma,
	Performance:    Charisma,
	Persuasion:     Charisma,
}

// Ability returns the ability governing the skill.
func (s Skill) Ability() (Ability, error) {
	a, ok := skillAbility[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSkill, string(s))
	}
	return a, nil
}

var classSkills = map[Class][]Skill{
	Barbarian: {AnimalHandling, Athletics, Intimidation, Nature, Perception, Survival},
	Bard:      Skills,
	Cleric:    {History, Insight, Medicine, Persuasion, Religion},
	Druid:     {Arcana, AnimalHandling, Insight, Medicine, Nature, Perception, Religion, Survival},
	Fighter:   {Acrobatics, AnimalHandling, Athletics, History, Insight, Intimidation, Perception, Survival},
	Monk:      {Acrobatics, Athletics, History, Insight, Religion, Stealth},
	Paladin:   {Athletics, Insight, Intimidation, Medicine, Persuasion, Religion},
	Ranger:    {AnimalHandling, Athletics, Insight, Investigation, Nature, Perception, Stealth, Survival},
	Rogue:     {Acrobatics, Athletics, Deception, Insight, Intimidation, Investigation, Perception, Performance, Persuasion, SleightOfHand, Stealth},
	Sorcerer:  {Arcana, Deception, Insight, Intimidation, Persuasion, Religion},
	Warlock:   {Arcana, Deception, History, Intimidation, Investigation, Nature, Religion},
	Wizard:    {Arcana, History, Insight, Investigation, Medicine, Religion},
}

var defaultClassSkills = []Skill{Arcana, History, Investigation, Nature, Religion}

// ClassSkillOptions returns the skills a class may pick proficiency in.
// The returned slice must not be modified.
func ClassSkillOptions(c Class) []Skill {
	if s, ok := classSkills[c]; ok {
		return s
	}
	return defaultClassSkills
}

// ClassSkillPicks returns how many proficiencies a class picks, capped by its options.
func ClassSkillPicks(c Class) int {
	n := 2
	switch c {
	case Rogue:
		n = 4
	case Bard, Ranger:
		n = 3
	}
	return min(n, len(ClassSkillOptions(c)))
}

// HitDie returns the base hit points of a level 1 character of the class.
func HitDie(c Class) int {
	switch c {
	case Barbarian:
		return 12
	case Fighter, Paladin, Ranger:
		return 10
	case Sorcerer, Wizard:
		return 6
	default:
		return 8
	}
}

// ArmorRule computes armor class from the dexterity modifier.
type ArmorRule func(dexMod int) int

// Kit is the starting equipment of a class.
type Kit struct {
	Items []string
	Gold  int
	Armor ArmorRule // nil means unarmored
}

var classKits = map[Class]Kit{
	Fighter: {
		Items: []string{"Longsword", "Shield", "Chain mail", "Dungeoneer's pack"},
		Gold:  10,
		Armor: func(int) int { return 16 },
	},
	Wizard: {
		Items: []string{"Spellbook", "Staff", "Component pouch", "Scholar's pack"},
		Gold:  25,
	},
	Cleric: {
		Items: []string{"Mace", "Scale mail", "Shield", "Holy symbol"},
		Gold:  15,
		Armor: func(dexMod int) int { return 14 + min(dexMod, 2) },
	},
	Rogue: {
		Items: []string{"Shortsword", "Shortbow with 20 arrows", "Leather armor", "Thieves' tools"},
		Gold:  30,
		Armor: func(dexMod int) int { return 11 + dexMod },
	},
}

var defaultKit = Kit{
	Items: []string{"Adventurer's pack", "Simple weapon"},
	Gold:  20,
}

// CommonGear is added to every starting inventory.
var CommonGear = []string{"Backpack", "Bedroll", "Rations (5 days)", "Waterskin", "Torch (3)"}

// StartingKit returns the starting equipment of a class.
func StartingKit(c Class) Kit {
	if k, ok := classKits[c]; ok {
		return k
	}
	return defaultKit
}

// Categories for the guessing game.
var Categories = []string{"Animal", "Object", "Food", "Place", "Person", "Vehicle", "Plant", "Profession"}
