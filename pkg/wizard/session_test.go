package wizard_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/testsupport"
	"github.com/goliatone/go-xcmgen/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	prompts      []string
	help         []string
	inputPos     int
	selectPos    int
	confirmPos   int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, cfg wizard.InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message+" ["+cfg.Default+"]")
	s.help = append(s.help, cfg.Help)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ wizard.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg wizard.SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message+" ["+strings.Join(cfg.Options, "|")+"]")
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) infoContains(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func newSession(t *testing.T, driver wizard.PromptDriver, dir string, opts ...wizard.Option) *wizard.Session {
	t.Helper()
	renderer, err := contract.New(contract.WithClock(testsupport.FixedClock(testsupport.ReferenceTime)))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	base := []wizard.Option{
		wizard.WithPromptDriver(driver),
		wizard.WithRenderer(renderer),
		wizard.WithOutput(output.Writer{Dir: dir}),
	}
	s, err := wizard.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestRun_AcceptsDefaults(t *testing.T) {
	dir := t.TempDir()
	driver := &stubDriver{
		inputs:    []string{"", "", "", "", "", ""},
		selectIdx: []int{0},
	}

	result, err := newSession(t, driver, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff(params.Defaults(), result.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if want := filepath.Join(dir, "DeryBridgeBridge.sol"); result.Path != want {
		t.Fatalf("path: want %q got %q", want, result.Path)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read contract: %v", err)
	}
	if string(data) != result.Contract.String() {
		t.Fatalf("written file differs from rendered contract")
	}
	if !strings.Contains(string(data), "DESTINATION_PARA_ID = 2004;") {
		t.Fatalf("contract missing parachain id")
	}

	wantPrompts := []string{
		"Project Name [DeryBridge]",
		"Author Name [Dery]",
		"Target Parachain ID [2004]",
		"Account Format [Ethereum (20 bytes)|Substrate (32 bytes)]",
		"XCM Precompile Address [0x0000000000000000000000000000000000000804]",
		"ERC-20 Pallet Index [50]",
		"Default Weight [1000000000]",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}

	for _, help := range driver.help {
		if strings.ContainsAny(help, "<>") {
			t.Fatalf("help text should be plain, got %q", help)
		}
	}

	for _, fragment := range []string{
		wizard.Title,
		"Smart contract generated: " + result.Path,
		"Contract:        DeryBridgeBridge",
		"Next steps",
		"npm install @openzeppelin/contracts",
	} {
		if !driver.infoContains(fragment) {
			t.Fatalf("expected output to mention %q, got %v", fragment, driver.infoMessages)
		}
	}
}

func TestRun_RepromptsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	driver := &stubDriver{
		inputs: []string{
			"My Cool Bridge",
			"Ada",
			"abc", "4294967296", "2030",
			"0x123", "0x00000000000000000000000000000000000008aA",
			"256", "7",
			"-1", "5000",
		},
		selectIdx: []int{1},
	}

	result, err := newSession(t, driver, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := params.GenerationParameters{
		ProjectName:       "My Cool Bridge",
		AuthorName:        "Ada",
		TargetParachainID: 2030,
		AccountFormat:     params.AccountFormatSubstrate,
		PrecompileAddress: "0x00000000000000000000000000000000000008aA",
		PalletIndex:       7,
		DefaultWeight:     5000,
	}
	if diff := cmp.Diff(want, result.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if filepath.Base(result.Path) != "MyCoolBridgeBridge.sol" {
		t.Fatalf("unexpected file %q", result.Path)
	}

	for _, fragment := range []string{
		"Invalid Target Parachain ID: must be a whole number between 0 and 4294967295",
		"Invalid XCM Precompile Address: must be 0x followed by 40 hexadecimal characters",
		"Invalid ERC-20 Pallet Index: must be a whole number between 0 and 255",
		"Invalid Default Weight: must be a whole number between 0 and 18446744073709551615",
	} {
		if !driver.infoContains(fragment) {
			t.Fatalf("expected %q in %v", fragment, driver.infoMessages)
		}
	}
	if driver.inputPos != len(driver.inputs) {
		t.Fatalf("expected all scripted inputs to be consumed, used %d of %d", driver.inputPos, len(driver.inputs))
	}
}

func TestRun_RepromptsInvalidProjectName(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"my-bridge", "", "", "", "", "", "Good Name"},
		selectIdx: []int{0},
	}

	result, err := newSession(t, driver, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Params.ProjectName != "Good Name" {
		t.Fatalf("project name: %q", result.Params.ProjectName)
	}
	if !driver.infoContains("Invalid Project Name: must form a valid contract identifier") {
		t.Fatalf("expected identifier message in %v", driver.infoMessages)
	}
}

func TestRun_OverwritePrompt(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "DeryBridgeBridge.sol")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	declined := &stubDriver{
		inputs:    []string{"", "", "", "", "", ""},
		selectIdx: []int{0},
		confirm:   []bool{false},
	}
	if _, err := newSession(t, declined, dir).Run(context.Background()); !errors.Is(err, wizard.ErrOverwriteDeclined) {
		t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
	}
	if data, _ := os.ReadFile(existing); string(data) != "old" {
		t.Fatalf("file should be untouched, got %q", data)
	}

	accepted := &stubDriver{
		inputs:    []string{"", "", "", "", "", ""},
		selectIdx: []int{0},
		confirm:   []bool{true},
	}
	result, err := newSession(t, accepted, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if data, _ := os.ReadFile(existing); string(data) != result.Contract.String() {
		t.Fatalf("file should be replaced")
	}
}

func TestRun_UsesConfiguredDefaults(t *testing.T) {
	defaults := testsupport.Parameters(func(p *params.GenerationParameters) {
		p.ProjectName = "Astar"
		p.AccountFormat = params.AccountFormatSubstrate
		p.TargetParachainID = 2006
	})
	driver := &stubDriver{
		inputs:    []string{"", "", "", "", "", ""},
		selectIdx: []int{1},
	}

	result, err := newSession(t, driver, t.TempDir(), wizard.WithDefaults(defaults)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(defaults, result.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if driver.prompts[0] != "Project Name [Astar]" {
		t.Fatalf("expected configured default in prompt, got %q", driver.prompts[0])
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &stubDriver{inputErr: wizard.ErrAborted}
	_, err := newSession(t, driver, t.TempDir()).Run(context.Background())
	if !errors.Is(err, wizard.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSession(t, &stubDriver{}, t.TempDir()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGuidance(t *testing.T) {
	lines := wizard.Guidance(params.Defaults(), "out/DeryBridgeBridge.sol")
	joined := strings.Join(lines, "\n")
	for _, fragment := range []string{
		"out/DeryBridgeBridge.sol",
		"0x0000000000000000000000000000000000000804",
		"bridgeERC20",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("guidance missing %q:\n%s", fragment, joined)
		}
	}
}
