package progression

// Progressions maps a key to its chords by scale-degree function label.
// Minor keys carry a trailing "m" and store their labels in upper case
// except for the diminished "ii".
var Progressions = map[string]map[string]Chord{
	"C": {
		"I":   {Name: "C Major", Shape: "x32010", Type: Major},
		"IV":  {Name: "F Major", Shape: "133211", Type: Major},
		"V":   {Name: "G Major", Shape: "320003", Type: Major},
		"V7":  {Name: "G7", Shape: "320001", Type: Seventh},
		"ii":  {Name: "D Minor", Shape: "xx0231", Type: Minor},
		"iii": {Name: "E Minor", Shape: "022000", Type: Minor},
		"vi":  {Name: "A Minor", Shape: "x02210", Type: Minor},
	},
	"D": {
		"I":   {Name: "D Major", Shape: "xx0232", Type: Major},
		"IV":  {Name: "G Major", Shape: "320003", Type: Major},
		"V":   {Name: "A Major", Shape: "x02220", Type: Major},
		"V7":  {Name: "A7", Shape: "x02020", Type: Seventh},
		"ii":  {Name: "E Minor", Shape: "022000", Type: Minor},
		"iii": {Name: "F# Minor", Shape: "244222", Type: Minor},
		"vi":  {Name: "B Minor", Shape: "x24432", Type: Minor},
	},
	"E": {
		"I":   {Name: "E Major", Shape: "022100", Type: Major},
		"IV":  {Name: "A Major", Shape: "x02220", Type: Major},
		"V":   {Name: "B Major", Shape: "x24442", Type: Major},
		"V7":  {Name: "B7", Shape: "x21202", Type: Seventh},
		"ii":  {Name: "F# Minor", Shape: "244222", Type: Minor},
		"iii": {Name: "G# Minor", Shape: "466444", Type: Minor},
		"vi":  {Name: "C# Minor", Shape: "x46654", Type: Minor},
	},
	"F": {
		"I":   {Name: "F Major", Shape: "133211", Type: Major},
		"IV":  {Name: "Bb Major", Shape: "x13331", Type: Major},
		"V":   {Name: "C Major", Shape: "x32010", Type: Major},
		"V7":  {Name: "C7", Shape: "x32310", Type: Seventh},
		"ii":  {Name: "G Minor", Shape: "355333", Type: Minor},
		"iii": {Name: "A Minor", Shape: "x02210", Type: Minor},
		"vi":  {Name: "D Minor", Shape: "xx0231", Type: Minor},
	},
	"G": {
		"I":   {Name: "G Major", Shape: "320003", Type: Major},
		"IV":  {Name: "C Major", Shape: "x32010", Type: Major},
		"V":   {Name: "D Major", Shape: "xx0232", Type: Major},
		"V7":  {Name: "D7", Shape: "xx0212", Type: Seventh},
		"ii":  {Name: "A Minor", Shape: "x02210", Type: Minor},
		"iii": {Name: "B Minor", Shape: "x24432", Type: Minor},
		"vi":  {Name: "E Minor", Shape: "022000", Type: Minor},
	},
	"A": {
		"I":   {Name: "A Major", Shape: "x02220", Type: Major},
		"IV":  {Name: "D Major", Shape: "xx0232", Type: Major},
		"V":   {Name: "E Major", Shape: "022100", Type: Major},
		"V7":  {Name: "E7", Shape: "020100", Type: Seventh},
		"ii":  {Name: "B Minor", Shape: "x24432", Type: Minor},
		"iii": {Name: "C# Minor", Shape: "x46654", Type: Minor},
		"vi":  {Name: "F# Minor", Shape: "244222", Type: Minor},
	},
	"B": {
		"I":   {Name: "B Major", Shape: "x24442", Type: Major},
		"IV":  {Name: "E Major", Shape: "022100", Type: Major},
		"V":   {Name: "F# Major", Shape: "244322", Type: Major},
		"V7":  {Name: "F#7", Shape: "242322", Type: Seventh},
		"ii":  {Name: "C# Minor", Shape: "x46654", Type: Minor},
		"iii": {Name: "D# Minor", Shape: "x68876", Type: Minor},
		"vi":  {Name: "G# Minor", Shape: "466444", Type: Minor},
	},
	"Am": {
		"I":   {Name: "A Minor", Shape: "x02210", Type: Minor},
		"IV":  {Name: "D Minor", Shape: "xx0231", Type: Minor},
		"V":   {Name: "E Minor", Shape: "022000", Type: Minor},
		"V7":  {Name: "E7", Shape: "020100", Type: Seventh},
		"ii":  {Name: "B Diminished", Shape: "x2323x", Type: Diminished},
		"III": {Name: "C Major", Shape: "x32010", Type: Major},
		"VI":  {Name: "F Major", Shape: "133211", Type: Major},
	},
	"Em": {
		"I":   {Name: "E Minor", Shape: "022000", Type: Minor},
		"IV":  {Name: "A Minor", Shape: "x02210", Type: Minor},
		"V":   {Name: "B Minor", Shape: "x24432", Type: Minor},
		"V7":  {Name: "B7", Shape: "x21202", Type: Seventh},
		"ii":  {Name: "F# Diminished", Shape: "2332xx", Type: Diminished},
		"III": {Name: "G Major", Shape: "320003", Type: Major},
		"VI":  {Name: "C Major", Shape: "x32010", Type: Major},
	},
	"Dm": {
		"I":   {Name: "D Minor", Shape: "xx0231", Type: Minor},
		"IV":  {Name: "G Minor", Shape: "355333", Type: Minor},
		"V":   {Name: "A Minor", Shape: "x02210", Type: Minor},
		"V7":  {Name: "A7", Shape: "x02020", Type: Seventh},
		"ii":  {Name: "E Diminished", Shape: "xx2320", Type: Diminished},
		"III": {Name: "F Major", Shape: "133211", Type: Major},
		"VI":  {Name: "Bb Major", Shape: "x13331", Type: Major},
	},
	"Gm": {
		"I":   {Name: "G Minor", Shape: "355333", Type: Minor},
		"IV":  {Name: "C Minor", Shape: "x35543", Type: Minor},
		"V":   {Name: "D Minor", Shape: "xx0231", Type: Minor},
		"V7":  {Name: "D7", Shape: "xx0212", Type: Seventh},
		"ii":  {Name: "A Diminished", Shape: "x0101x", Type: Diminished},
		"III": {Name: "Bb Major", Shape: "x13331", Type: Major},
		"VI":  {Name: "Eb Major", Shape: "x68876", Type: Major},
	},
	"Cm": {
		"I":   {Name: "C Minor", Shape: "x35543", Type: Minor},
		"IV":  {Name: "F Minor", Shape: "133111", Type: Minor},
		"V":   {Name: "G Minor", Shape: "355333", Type: Minor},
		"V7":  {Name: "G7", Shape: "320001", Type: Seventh},
		"ii":  {Name: "D Diminished", Shape: "xx0101", Type: Diminished},
		"III": {Name: "Eb Major", Shape: "x68876", Type: Major},
		"VI":  {Name: "Ab Major", Shape: "466554", Type: Major},
	},
	"Fm": {
		"I":   {Name: "F Minor", Shape: "133111", Type: Minor},
		"IV":  {Name: "Bb Minor", Shape: "x13321", Type: Minor},
		"V":   {Name: "C Minor", Shape: "x35543", Type: Minor},
		"V7":  {Name: "C7", Shape: "x32310", Type: Seventh},
		"ii":  {Name: "G Diminished", Shape: "3433xx", Type: Diminished},
		"III": {Name: "Ab Major", Shape: "466554", Type: Major},
		"VI":  {Name: "Db Major", Shape: "x46654", Type: Major},
	},
	"Bm": {
		"I":   {Name: "B Minor", Shape: "x24432", Type: Minor},
		"IV":  {Name: "E Minor", Shape: "022000", Type: Minor},
		"V":   {Name: "F# Minor", Shape: "244222", Type: Minor},
		"V7":  {Name: "F#7", Shape: "242322", Type: Seventh},
		"ii":  {Name: "C# Diminished", Shape: "x4544x", Type: Diminished},
		"III": {Name: "D Major", Shape: "xx0232", Type: Major},
		"VI":  {Name: "G Major", Shape: "320003", Type: Major},
	},
}

// Catalogue lists common open and barre chords.
var Catalogue = []Chord{
	{Name: "C Major", Shape: "x32010", Type: Major},
	{Name: "D Major", Shape: "xx0232", Type: Major},
	{Name: "E Major", Shape: "022100", Type: Major},
	{Name: "F Major", Shape: "133211", Type: Major},
	{Name: "G Major", Shape: "320003", Type: Major},
	{Name: "A Major", Shape: "x02220", Type: Major},
	{Name: "B Major", Shape: "x24442", Type: Major},
	{Name: "C Minor", Shape: "x35543", Type: Minor},
	{Name: "D Minor", Shape: "xx0231", Type: Minor},
	{Name: "E Minor", Shape: "022000", Type: Minor},
	{Name: "F Minor", Shape: "133111", Type: Minor},
	{Name: "G Minor", Shape: "355333", Type: Minor},
	{Name: "A Minor", Shape: "x02210", Type: Minor},
	{Name: "B Minor", Shape: "x24432", Type: Minor},
	{Name: "C7", Shape: "x32310", Type: Seventh},
	{Name: "D7", Shape: "xx0212", Type: Seventh},
	{Name: "E7", Shape: "020100", Type: Seventh},
	{Name: "F7", Shape: "131211", Type: Seventh},
	{Name: "G7", Shape: "320001", Type: Seventh},
	{Name: "A7", Shape: "x02020", Type: Seventh},
	{Name: "B7", Shape: "x21202", Type: Seventh},
}
