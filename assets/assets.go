// Package assets embeds data files shared by the client, the server and the
// terminal viewer. It must not import ebiten so the server stays headless.
package assets

import "embed"

//go:embed all:arenas
var Arenas embed.FS

// ClassicArena is the path of the default arena inside Arenas.
const ClassicArena = "arenas/classic.tmx"
