package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/scene-engine/pkg/scene"
)

// Request kinds the game loop sends to the UI.
const (
	reqTime      = "time"
	reqScene     = "scene"
	reqPath      = "path"
	reqInventory = "inventory"
	reqMessage   = "message"
	reqResult    = "result"
)

// uiRequest is one view call crossing from the game goroutine into the
// tea program. Pick requests block on reply; the rest reply immediately
// after rendering.
type uiRequest struct {
	kind    string
	time    scene.TimeDTO
	scene   *scene.SceneDTO
	choices []scene.ChoiceDTO
	lines   []string
	text    string
	reply   chan string
}

// teaView implements scene.View by forwarding every call to the tea
// program and blocking until the player answers. The game loop runs on
// its own goroutine, so blocking here never stalls the UI.
type teaView struct {
	send func(tea.Msg)
}

var _ scene.View = (*teaView)(nil)

func newTeaView(send func(tea.Msg)) *teaView {
	return &teaView{send: send}
}

func (v *teaView) ask(ctx context.Context, req *uiRequest) (string, error) {
	req.reply = make(chan string, 1)
	v.send(req)
	select {
	case pick := <-req.reply:
		return pick, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (v *teaView) ShowTime(ctx context.Context, dto scene.TimeDTO) error {
	_, err := v.ask(ctx, &uiRequest{kind: reqTime, time: dto})
	return err
}

func (v *teaView) ShowScene(ctx context.Context, dto *scene.SceneDTO) (string, error) {
	return v.ask(ctx, &uiRequest{kind: reqScene, scene: dto, choices: dto.Choices})
}

func (v *teaView) ShowPath(ctx context.Context, choices []scene.ChoiceDTO) (string, error) {
	return v.ask(ctx, &uiRequest{kind: reqPath, choices: choices})
}

func (v *teaView) ShowInventory(ctx context.Context, lines []string) error {
	_, err := v.ask(ctx, &uiRequest{kind: reqInventory, lines: lines})
	return err
}

func (v *teaView) ShowMessage(ctx context.Context, text string) error {
	_, err := v.ask(ctx, &uiRequest{kind: reqMessage, text: text})
	return err
}

func (v *teaView) ShowChoiceResult(ctx context.Context, text string) error {
	_, err := v.ask(ctx, &uiRequest{kind: reqResult, text: text})
	return err
}
