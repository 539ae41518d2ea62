// Package viz draws plates and their sand in the terminal.
//
//   - [Canvas]: braille dot canvas, 2x4 dots per cell
//   - [Projection]: maps plate coordinates in metres onto canvas dots
//   - [DrawPlate]: shape outline plus one dot per grain
//   - [ResonancePlot]: strength-versus-frequency chart
//   - [Theme] and [Styles]: lipgloss colour schemes for the TUI and CLI
package viz
