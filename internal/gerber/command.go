package gerber

import "strconv"

// GraphicCommand is the parsed set of fields present on one graphic
// command line — any subset of G/X/Y/I/J/D may be present, per §4.6.
type GraphicCommand struct {
	HasG bool
	G    int
	HasX bool
	X    float64
	HasY bool
	Y    float64
	HasI bool
	I    float64
	HasJ bool
	J    float64
	HasD bool
	D    int
}

// parseGraphicCommand extracts the G/X/Y/I/J/D fields from a trimmed,
// '*'-stripped graphic command line. Malformed numeric fields are
// skipped per the soft-error policy rather than aborting the whole line.
func parseGraphicCommand(line string) GraphicCommand {
	var cmd GraphicCommand
	i := 0
	n := len(line)
	for i < n {
		field := line[i]
		if !isFieldLetter(field) {
			i++
			continue
		}
		j := i + 1
		for j < n && !isFieldLetter(line[j]) {
			j++
		}
		value := line[i+1 : j]
		switch field {
		case 'G':
			if v, err := strconv.Atoi(value); err == nil {
				cmd.HasG, cmd.G = true, v
			}
		case 'X':
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cmd.HasX, cmd.X = true, v
			}
		case 'Y':
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cmd.HasY, cmd.Y = true, v
			}
		case 'I':
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cmd.HasI, cmd.I = true, v
			}
		case 'J':
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cmd.HasJ, cmd.J = true, v
			}
		case 'D':
			if v, err := strconv.Atoi(value); err == nil {
				cmd.HasD, cmd.D = true, v
			}
		}
		i = j
	}
	return cmd
}

func isFieldLetter(b byte) bool {
	switch b {
	case 'G', 'X', 'Y', 'I', 'J', 'D':
		return true
	default:
		return false
	}
}
