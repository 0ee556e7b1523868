package mcpserver

// EncodingContract describes the text encodings accepted by the tools: chord
// shapes, scale patterns and chord library files.
const EncodingContract = `# Fretwork Encoding Contract

## Chord shapes

A chord shape is exactly six characters, one per string, from the low E
string (left) to the high E string (right).

- ` + "`x`" + ` mutes the string.
- ` + "`0`" + ` plays it open.
- ` + "`1`" + `-` + "`9`" + ` frets it at that fret.

Examples: ` + "`x32010`" + ` (C major), ` + "`133211`" + ` (F major, barre at fret 1),
` + "`x68876`" + ` (Eb major, drawn from fret 6).

A diagram shows five frets. Shapes whose lowest fretted note is at fret 5 or
above are drawn from that fret with a fret number beside the first row.
A barre is reported when the first fretted string and a later string at the
same fret are at least four strings apart and no string is fretted lower.

## Scale patterns

Patterns are authored in C and transposed to the requested root. Tables:
` + "`diatonic`" + ` and ` + "`pentatonic`" + `, five patterns each, numbered from 1.
Highlight modes: ` + "`none`" + `, ` + "`major`" + ` (root) and ` + "`minor`" + ` (relative minor).
Roots accept sharps or flats (` + "`F#`" + `, ` + "`Bb`" + `); flat keys are spelled with flats.

## Keys and functions

Keys are ` + "`C D E F G A B`" + ` and the minor keys ` + "`Am Em Dm Gm Cm Fm Bm`" + `.
Functions are ` + "`I IV V V7 ii iii vi`" + ` in major keys and
` + "`i iv v v7 ii III VI`" + ` in minor keys (case-insensitive).

## Chord library files

Library files are YAML and live in the library directory:

` + "```" + `yaml
title: Jazz voicings        # optional, defaults to the file name
tags: [jazz]                # optional
chords:
  - name: Cmaj7
    shape: x32000
    type: major              # major, minor, 7th or diminished
` + "```" + `

Entries with an invalid shape or type are skipped. A library chord with the
same name as a built-in one takes precedence.
`
