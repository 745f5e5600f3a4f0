// Package naming derives output file paths and detects inputs that would
// write the same output file.
//
// The output of "<dir>/Song.mp3" is always "<outDir>/Song.ogg": the stem is
// kept verbatim and the extension replaced. Two inputs that differ only by
// extension ("Song.mp3", "Song.wav") therefore map to the same output, and the
// later one overwrites the earlier. The player's SD card is FAT-formatted, so
// stems that differ only by letter case collide there as well.
package naming
