package constants

// Ratio is a duration in quarter notes, always in lowest terms.
type Ratio struct {
	Num int
	Den int
}

var Durations = map[string]map[Ratio]string{
	"US": {
		{8, 1}: "double whole", {6, 1}: "dotted whole", {4, 1}: "whole",
		{3, 1}: "dotted half", {2, 1}: "half", {4, 3}: "half triplet",
		{3, 2}: "dotted quarter", {1, 1}: "quarter", {3, 4}: "dotted eighth",
		{2, 3}: "quarter triplet", {1, 2}: "eighth", {3, 8}: "dotted sixteenth",
		{1, 3}: "eighth triplet", {1, 4}: "sixteenth",
		{3, 16}: "dotted thirty-second", {1, 6}: "sixteenth triplet",
		{1, 8}: "thirty-second", {3, 32}: "dotted sixty-fourth",
		{1, 12}: "thirty-second triplet", {1, 16}: "sixty-fourth",
		{1, 24}: "sixty-fourth triplet",
	},
	"UK": {
		{8, 1}: "breve", {6, 1}: "dotted semibreve", {4, 1}: "semibreve",
		{3, 1}: "dotted minim", {2, 1}: "minim", {4, 3}: "minim triplet",
		{3, 2}: "dotted crochet", {1, 1}: "crochet", {3, 4}: "dotted quaver",
		{2, 3}: "crochet triplet", {1, 2}: "quaver", {3, 8}: "dotted semiquaver",
		{1, 3}: "quaver triplet", {1, 4}: "semiquaver", {3, 16}: "dotted demisemiquaver",
		{1, 6}: "semiquaver triplet", {1, 8}: "demisemiquaver",
		{3, 32}: "dotted hemidemisemiquaver", {1, 12}: "demisemiquaver triplet",
		{1, 16}: "hemidemisemiquaver", {1, 24}: "hemidemisemiquaver triplet",
	},
}

// DurationStr maps short note value names to quarter-note ratios. A trailing
// "." is dotted and "-3" is a triplet.
var DurationStr = map[string]Ratio{
	"1.": {6, 1}, "1": {4, 1}, "2.": {3, 1}, "2": {2, 1}, "2-3": {4, 3},
	"4.": {3, 2}, "4": {1, 1}, "8.": {3, 4}, "4-3": {2, 3},
	"8": {1, 2}, "16.": {3, 8}, "8-3": {1, 3}, "16": {1, 4},
	"32.": {3, 16}, "16-3": {1, 6}, "32": {1, 8}, "64.": {3, 32},
	"32-3": {1, 12}, "64": {1, 16}, "64-3": {1, 24},
}
