package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"net"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// maxListedServers keeps the list inside the 640x360 screen.
const maxListedServers = 5

// ServerEntry is one row of the master server's /servers listing.
type ServerEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Version     string `json:"version"`
	Arena       string `json:"arena"`
	TargetScore int    `json:"targetScore"`
	Score       [2]int `json:"score"`
	Match       string `json:"match"`
}

var (
	panelColor = color.RGBA{30, 30, 45, 255}
	textColor  = color.RGBA{255, 255, 255, 255}
	labelColor = color.RGBA{200, 200, 200, 255}
	dimColor   = color.RGBA{128, 128, 128, 255}
)

// buttonStyle is the idle/hover/pressed/disabled fill of a button.
type buttonStyle [4]color.RGBA

var (
	neutralButton = buttonStyle{{60, 60, 80, 255}, {80, 80, 100, 255}, {40, 40, 60, 255}, {40, 40, 40, 255}}
	rowButton     = buttonStyle{{50, 50, 70, 255}, {70, 70, 100, 255}, {40, 40, 60, 255}, {40, 40, 40, 255}}
	refreshButton = buttonStyle{{80, 80, 120, 255}, {100, 100, 150, 255}, {60, 60, 90, 255}, {40, 40, 40, 255}}
	connectButton = buttonStyle{{40, 100, 40, 255}, {60, 140, 60, 255}, {30, 80, 30, 255}, {40, 50, 40, 255}}
)

type ServerBrowserUI struct {
	UI *ebitenui.UI

	OnConnect func(address string, spectate bool)
	OnGoBack  func()
	OnRefresh func()

	addressInput *widget.TextInput
	statusLabel  *widget.Label
	browseLabel  *widget.Label
	connectBtn   *widget.Button
	refreshBtn   *widget.Button
	spectateBtn  *widget.Button
	serverList   *widget.Container
	spectate     bool
	defaultHost  string
	defaultPort  string

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

func NewServerBrowserUI(defaultHost, defaultPort string, onConnect func(address string, spectate bool), onGoBack func(), onRefresh func()) *ServerBrowserUI {
	ui := &ServerBrowserUI{
		OnConnect:   onConnect,
		OnGoBack:    onGoBack,
		OnRefresh:   onRefresh,
		defaultHost: defaultHost,
		defaultPort: defaultPort,
	}
	ui.loadFonts()
	ui.buildUI()
	return ui
}

func (ui *ServerBrowserUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 18}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
}

func (ui *ServerBrowserUI) buildUI() {
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	content.AddChild(ui.label("MULTIPLAYER", &ui.titleFace, textColor))
	content.AddChild(ui.buildBrowsePanel())
	content.AddChild(ui.buildDirectConnectPanel())

	ui.statusLabel = ui.label("", &ui.smallFace, color.RGBA{255, 200, 100, 255})
	content.AddChild(ui.statusLabel)

	footer := row(10)
	footer.AddChild(ui.button("Back", &ui.normalFace, neutralButton, 80, 28, func() {
		if ui.OnGoBack != nil {
			ui.OnGoBack()
		}
	}))
	content.AddChild(footer)

	root.AddChild(content)
	ui.UI = &ebitenui.UI{Container: root}
}

func (ui *ServerBrowserUI) buildBrowsePanel() *widget.Container {
	p := panel(4)

	header := row(8)
	header.AddChild(ui.label("Servers", &ui.normalFace, labelColor))
	ui.refreshBtn = ui.button("Refresh", &ui.smallFace, refreshButton, 70, 20, func() {
		if ui.OnRefresh != nil {
			ui.OnRefresh()
		}
	})
	header.AddChild(ui.refreshBtn)
	ui.browseLabel = ui.label("", &ui.smallFace, color.RGBA{160, 160, 180, 255})
	header.AddChild(ui.browseLabel)
	p.AddChild(header)

	ui.serverList = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)
	p.AddChild(ui.serverList)

	return p
}

func (ui *ServerBrowserUI) buildDirectConnectPanel() *widget.Container {
	p := panel(6)

	addressRow := row(6)
	addressRow.AddChild(ui.label("Address:", &ui.normalFace, labelColor))
	ui.addressInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(200, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          textColor,
			Disabled:      dimColor,
			Caret:         textColor,
			DisabledCaret: dimColor,
		}),
		widget.TextInputOpts.Placeholder(net.JoinHostPort(ui.defaultHost, ui.defaultPort)),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
	addressRow.AddChild(ui.addressInput)
	p.AddChild(addressRow)

	ui.connectBtn = ui.button("Connect", &ui.normalFace, connectButton, 120, 26, ui.connect)
	ui.spectateBtn = ui.button(spectateLabel(false), &ui.normalFace, neutralButton, 120, 26, func() {
		ui.spectate = !ui.spectate
		ui.spectateBtn.Text().Label = spectateLabel(ui.spectate)
	})

	buttons := row(6)
	buttons.AddChild(ui.connectBtn)
	buttons.AddChild(ui.spectateBtn)
	p.AddChild(buttons)

	return p
}

func (ui *ServerBrowserUI) connect() {
	if ui.OnConnect == nil || ui.connectBtn.GetWidget().Disabled {
		return
	}
	ui.OnConnect(ResolveAddress(ui.addressInput.GetText(), ui.defaultHost, ui.defaultPort), ui.spectate)
}

// SetServerList replaces the listed servers. Clicking a row connects to it.
func (ui *ServerBrowserUI) SetServerList(servers []ServerEntry) {
	ui.serverList.RemoveChildren()

	if len(servers) == 0 {
		ui.serverList.AddChild(ui.label("No servers online", &ui.smallFace, dimColor))
		return
	}

	for i, entry := range servers {
		if i == maxListedServers {
			break
		}
		address := entry.Address
		ui.serverList.AddChild(ui.button(FormatServerEntry(entry), &ui.smallFace, rowButton, 360, 20, func() {
			if ui.OnConnect != nil {
				ui.OnConnect(address, ui.spectate)
			}
		}))
	}
}

// FormatServerEntry renders one row of the server list.
func FormatServerEntry(e ServerEntry) string {
	target := "endless"
	if e.TargetScore > 0 {
		target = fmt.Sprintf("first to %d", e.TargetScore)
	}
	state := e.Match
	if e.Match == "playing" || e.Match == "finished" {
		state = fmt.Sprintf("%s %d-%d", e.Match, e.Score[0], e.Score[1])
	}
	full := ""
	if e.MaxPlayers > 0 && e.Players >= e.MaxPlayers {
		full = "  FULL"
	}
	return strings.TrimSpace(fmt.Sprintf("%s  %d/%d  %s  %s  %s%s", e.Name, e.Players, e.MaxPlayers, e.Arena, target, state, full))
}

// ResolveAddress completes what was typed into host:port. Either half may
// be left out and falls back to the default.
func ResolveAddress(input, defaultHost, defaultPort string) string {
	input = strings.TrimSpace(input)
	host, port := input, ""
	if h, p, err := net.SplitHostPort(input); err == nil {
		host, port = h, p
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port)
}

func (ui *ServerBrowserUI) SetBrowseStatus(msg string) {
	if ui.browseLabel != nil {
		ui.browseLabel.Label = msg
	}
}

func (ui *ServerBrowserUI) SetRefreshing(refreshing bool) {
	if ui.refreshBtn != nil {
		ui.refreshBtn.GetWidget().Disabled = refreshing
	}
}

func (ui *ServerBrowserUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *ServerBrowserUI) SetConnecting(connecting bool) {
	if ui.connectBtn != nil {
		ui.connectBtn.GetWidget().Disabled = connecting
	}
}

func (ui *ServerBrowserUI) Update() {
	ui.UI.Update()
}

func spectateLabel(on bool) string {
	if on {
		return "Spectate: On"
	}
	return "Spectate: Off"
}

func (ui *ServerBrowserUI) label(msg string, face *text.Face, c color.Color) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(msg, face, &widget.LabelColor{Idle: c}))
}

func (ui *ServerBrowserUI) button(msg string, face *text.Face, style buttonStyle, w, h int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(w, h)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(style[0]),
			Hover:    image.NewNineSliceColor(style[1]),
			Pressed:  image.NewNineSliceColor(style[2]),
			Disabled: image.NewNineSliceColor(style[3]),
		}),
		widget.ButtonOpts.Text(msg, face, &widget.ButtonTextColor{
			Idle:     textColor,
			Disabled: dimColor,
		}),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func panel(spacing int) *widget.Container {
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
	)
}

func row(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
	)
}
