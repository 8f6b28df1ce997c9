package prompts

// AdventureHelp is shown from the adventure main menu.
const AdventureHelp = `AI DUNGEON MASTER: RULES & COMMANDS

Play Dungeons & Dragons 5th Edition as a text adventure with an AI Dungeon Master.

Features:
  - Character creation with 5e races, classes, backgrounds and skills
  - Interactive storytelling that remembers everything said so far
  - Skill checks and dice rolls resolved locally, never by the AI
  - Automatic saving after every turn

How to play:
  - Create a character or continue a saved adventure
  - The DM describes scenes; you decide what your character does
  - Roll skill checks when attempting something difficult

Commands during play:
  Take an action        Describe what your character does
  Roll a skill check    d20 + ability modifier + proficiency (if trained)
  Roll dice             Roll any number of d4, d6, d8, d10, d12, d20 or d100
  Show character sheet  View stats, skills and inventory
  Save game             Save your progress now
  Return to main menu   Leave play; progress is already saved

Concepts:
  Ability scores   STR, DEX, CON, INT, WIS, CHA; modifier = floor((score - 10) / 2)
  Proficiency      +2 at levels 1-4, rising to +6 at level 17
  Difficulty (DC)  Easy 10, Medium 15, Hard 20, Very Hard 25, Nearly Impossible 30
  Hit points (HP)  Your character's health
  Armor class (AC) How hard you are to hit`

// QuestionsHelp is shown from the guessing game main menu.
const QuestionsHelp = `TWENTY QUESTIONS: RULES & COMMANDS

Pick a category. The AI secretly chooses a subject in it, and you have a limited
number of yes/no questions to work out what it is.

Commands during play:
  Ask a question       Any yes/no question; uses one question
  Make a guess         Name the subject; a wrong guess also uses one question
  Give up              The AI reveals its subject and the game ends
  Show progress        See your questions and the answers so far
  Save game            Save your progress now
  Return to main menu  Leave play; progress is already saved

When no questions are left you must make a final guess. If it is wrong, the
subject is revealed.`
