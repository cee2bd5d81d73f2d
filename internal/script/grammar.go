package script

// Grammar returns the Lark grammar of the score script language
func Grammar() string {
	return `
// Score script grammar - one call per statement, statements separated by ";"
// SYNTAX:
//   settings(tempo=120, key="C major", time="4/4")
//   pattern(name=lead, notes="C4:q D4:q E4:h")
//   drums(name=beat, drum=kick, steps="x...x...x...x...")
//   section(name=verse, bars=4)
//   track(section=verse, instrument=piano, pattern=lead, repeat=2)
//   arrange(sections="verse verse")
//
// Bare words are names; notation and lists are quoted strings.

// ---------- Start rule ----------
start: statement (SEP statement)* SEP?

statement: settings_call
         | instrument_call
         | pattern_call
         | chords_call
         | degrees_call
         | drums_call
         | euclid_call
         | arp_call
         | transform_call
         | section_call
         | track_call
         | arrange_call

// ---------- Score settings ----------
settings_call: "settings" "(" settings_param ("," SP settings_param)* ")"
settings_param: "tempo" "=" NUMBER
              | "key" "=" STRING
              | "time" "=" STRING
              | "swing" "=" NUMBER

// ---------- Instrument registry ----------
instrument_call: "instrument" "(" instrument_param ("," SP instrument_param)* ")"
instrument_param: "name" "=" NAME
                | "type" "=" NAME
                | "preset" "=" STRING
                | "volume" "=" NUMBER
                | "pan" "=" NUMBER

// ---------- Patterns ----------
pattern_call: "pattern" "(" pattern_param ("," SP pattern_param)* ")"
pattern_param: "name" "=" NAME
             | "notes" "=" STRING
             | "rest" "=" STRING
             | "envelope" "=" NAME
             | "constrain" "=" NAME

chords_call: "chords" "(" chords_param ("," SP chords_param)* ")"
chords_param: "name" "=" NAME
            | "chords" "=" STRING
            | "rest" "=" STRING
            | "envelope" "=" NAME

degrees_call: "degrees" "(" degrees_param ("," SP degrees_param)* ")"
degrees_param: "name" "=" NAME
             | "degrees" "=" STRING
             | "rhythm" "=" STRING
             | "octave" "=" NUMBER

drums_call: "drums" "(" drums_param ("," SP drums_param)* ")"
drums_param: "name" "=" NAME
           | "drum" "=" NAME
           | "steps" "=" STRING
           | "step" "=" STRING
           | "length" "=" NUMBER

euclid_call: "euclid" "(" euclid_param ("," SP euclid_param)* ")"
euclid_param: "name" "=" NAME
            | "hits" "=" NUMBER
            | "steps" "=" NUMBER
            | "rotation" "=" NUMBER
            | "drum" "=" NAME
            | "pitch" "=" STRING
            | "duration" "=" STRING
            | "velocity" "=" NUMBER

arp_call: "arp" "(" arp_param ("," SP arp_param)* ")"
arp_param: "name" "=" NAME
         | "chord" "=" STRING
         | "mode" "=" NAME
         | "octaves" "=" NUMBER
         | "gate" "=" NUMBER
         | "steps" "=" NUMBER
         | "duration" "=" STRING

transform_call: "transform" "(" transform_param ("," SP transform_param)* ")"
transform_param: "name" "=" NAME
               | "source" "=" NAME
               | "operation" "=" NAME
               | "axis" "=" STRING
               | "factor" "=" NUMBER
               | "semitones" "=" NUMBER
               | "octaves" "=" NUMBER

// ---------- Sections and tracks ----------
section_call: "section" "(" section_param ("," SP section_param)* ")"
section_param: "name" "=" NAME
             | "bars" "=" NUMBER
             | "tempo" "=" NUMBER
             | "key" "=" STRING

track_call: "track" "(" track_param ("," SP track_param)* ")"
track_param: "section" "=" NAME
           | "instrument" "=" NAME
           | "pattern" "=" NAME
           | "patterns" "=" STRING
           | "repeat" "=" NUMBER
           | "octave" "=" NUMBER
           | "transpose" "=" NUMBER
           | "velocity" "=" NUMBER
           | "humanize" "=" NUMBER
           | "swing" "=" NUMBER
           | "groove" "=" NAME
           | "mute" "=" NAME

// ---------- Arrangement ----------
arrange_call: "arrange" "(" "sections" "=" STRING ")"

// ---------- Terminals ----------
SEP: /;[ \t\r\n]*/
SP: " "+
NAME: /[A-Za-z_][A-Za-z0-9_]*/
STRING: /"[^"]*"/
NUMBER: /-?\d+(\.\d+)?/
`
}
