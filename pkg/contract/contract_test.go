package contract_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/testsupport"
)

func newRenderer(t *testing.T, opts ...contract.Option) *contract.Renderer {
	t.Helper()
	base := []contract.Option{contract.WithClock(testsupport.FixedClock(testsupport.ReferenceTime))}
	r, err := contract.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func mustRender(t *testing.T, r *contract.Renderer, p params.GenerationParameters) string {
	t.Helper()
	out, err := r.Render(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func assertContains(t *testing.T, src string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(src, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, src)
		}
	}
}

func TestRender_ScenarioEthereumDefaults(t *testing.T) {
	src := mustRender(t, newRenderer(t), params.Defaults())

	assertContains(t, src,
		"uint32 public constant DESTINATION_PARA_ID = 2004;",
		"uint256 public constant BENEFICIARY_LENGTH = 20;",
		"uint8(1), uint8(2), uint8(0), uint32(DESTINATION_PARA_ID), uint8(1), uint8(0), beneficiaryBytes",
		"contract DeryBridgeBridge is Ownable, ReentrancyGuard {",
		"uint64 public defaultWeight = 1000000000;",
		"uint8 public palletIndex = 50;",
	)
}

func TestRender_ScenarioSubstrateDiffersOnlyInEncoding(t *testing.T) {
	r := newRenderer(t)
	eth := mustRender(t, r, params.Defaults())
	sub := mustRender(t, r, testsupport.Parameters(func(p *params.GenerationParameters) {
		p.AccountFormat = params.AccountFormatSubstrate
	}))

	assertContains(t, sub,
		"uint256 public constant BENEFICIARY_LENGTH = 32;",
		"uint32(DESTINATION_PARA_ID), uint8(0), uint8(0), beneficiaryBytes",
	)

	rewritten := strings.NewReplacer(
		"uint32(DESTINATION_PARA_ID), uint8(1), uint8(0), beneficiaryBytes",
		"uint32(DESTINATION_PARA_ID), uint8(0), uint8(0), beneficiaryBytes",
		"BENEFICIARY_LENGTH = 20;",
		"BENEFICIARY_LENGTH = 32;",
	).Replace(eth)

	if diff := cmp.Diff(sub, rewritten); diff != "" {
		t.Fatalf("formats differ beyond the account encoding (-substrate +ethereum):\n%s", diff)
	}
}

func TestRender_ScenarioProjectNameWithSpaces(t *testing.T) {
	p := testsupport.Parameters(func(p *params.GenerationParameters) {
		p.ProjectName = "My Cool Bridge"
	})
	src := mustRender(t, newRenderer(t), p)

	assertContains(t, src,
		"contract MyCoolBridgeBridge is Ownable, ReentrancyGuard {",
		"@title  My Cool Bridge Universal XCM Bridge",
	)
	if p.ContractName() != "MyCoolBridgeBridge" {
		t.Fatalf("contract name: %q", p.ContractName())
	}
}

func TestRender_DeterministicModuloTimestamp(t *testing.T) {
	first := mustRender(t, newRenderer(t), params.Defaults())

	later := testsupport.ReferenceTime.Add(26*time.Hour + 13*time.Minute)
	second := mustRender(t, newRenderer(t, contract.WithClock(testsupport.FixedClock(later))), params.Defaults())

	firstStamp := testsupport.ReferenceTime.Format(contract.TimestampLayout)
	secondStamp := later.Format(contract.TimestampLayout)
	assertContains(t, first, "@notice Generated on "+firstStamp+" via xcmgen")
	assertContains(t, second, "@notice Generated on "+secondStamp+" via xcmgen")

	if diff := cmp.Diff(first, strings.ReplaceAll(second, secondStamp, firstStamp)); diff != "" {
		t.Fatalf("renders differ outside the timestamp (-first +second):\n%s", diff)
	}
}

func TestRender_ReadsClockOncePerCall(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return testsupport.ReferenceTime.Add(time.Duration(calls) * time.Hour)
	}
	r := newRenderer(t, contract.WithClock(clock))
	src := mustRender(t, r, params.Defaults())

	if calls != 1 {
		t.Fatalf("expected one clock read, got %d", calls)
	}
	assertContains(t, src, testsupport.ReferenceTime.Add(time.Hour).Format(contract.TimestampLayout))
}

func TestRender_EmbedsParametersVerbatim(t *testing.T) {
	p := params.GenerationParameters{
		ProjectName:       "Edge",
		AuthorName:        `Ada <ada@example.com> & "friends"`,
		TargetParachainID: 4294967295,
		AccountFormat:     params.AccountFormatEthereum,
		PrecompileAddress: "0x0000000000000000000000000000000000000815",
		PalletIndex:       255,
		DefaultWeight:     18446744073709551615,
	}
	src := mustRender(t, newRenderer(t), p)

	assertContains(t, src,
		"DESTINATION_PARA_ID = 4294967295;",
		"defaultWeight = 18446744073709551615;",
		"palletIndex = 255;",
		`@author Ada <ada@example.com> & "friends"`,
		"@dev    Deploy with the XCM precompile at 0x0000000000000000000000000000000000000815",
	)
	if strings.Contains(src, "&lt;") || strings.Contains(src, "&#34;") {
		t.Fatalf("output should not be HTML escaped:\n%s", src)
	}
}

func TestRender_MalformedValuesPassThrough(t *testing.T) {
	p := testsupport.Parameters(func(p *params.GenerationParameters) {
		p.PrecompileAddress = "0xnot-an-address"
		p.AccountFormat = params.AccountFormat("polkadot")
		p.ProjectName = ""
	})

	src := mustRender(t, newRenderer(t), p)
	assertContains(t, src,
		"XCM precompile at 0xnot-an-address",
		"contract Bridge is Ownable, ReentrancyGuard {",
		"BENEFICIARY_LENGTH = 32;",
	)
}

func TestRender_RefundOnFailureInBothPaths(t *testing.T) {
	src := mustRender(t, newRenderer(t), params.Defaults())

	native := between(t, src, "NATIVE BRIDGE", "ERC-20 BRIDGE")
	token := between(t, src, "ERC-20 BRIDGE", "ADMIN")

	nativeFailure := between(t, native, "if (!success) {", "} else {")
	assertContains(t, nativeFailure,
		"emit XcmFailed(xcmHash, returnData);",
		"payable(msg.sender).call{value: msg.value}(\"\")",
	)

	tokenFailure := between(t, token, "if (!success) {", "} else {")
	assertContains(t, tokenFailure,
		"emit XcmFailed(xcmHash, returnData);",
		"IERC20(tokenAddress).safeTransfer(msg.sender, amount);",
	)

	pull := strings.Index(token, "safeTransferFrom(msg.sender, address(this), amount)")
	send := strings.Index(token, "XCM_PRECOMPILE.call(")
	if pull < 0 || send < 0 || pull > send {
		t.Fatalf("token path must pull funds before sending (pull=%d send=%d)", pull, send)
	}
	assertContains(t, token, contract.AssetLocationDescriptor())
}

func TestRender_LengthCheckPrecedesSend(t *testing.T) {
	for _, format := range params.AccountFormats() {
		t.Run(string(format), func(t *testing.T) {
			src := mustRender(t, newRenderer(t), testsupport.Parameters(func(p *params.GenerationParameters) {
				p.AccountFormat = format
			}))
			for _, path := range []string{
				between(t, src, "NATIVE BRIDGE", "ERC-20 BRIDGE"),
				between(t, src, "ERC-20 BRIDGE", "ADMIN"),
			} {
				check := strings.Index(path, `require(beneficiaryBytes.length == BENEFICIARY_LENGTH, "`+contract.LengthError+`");`)
				send := strings.Index(path, "XCM_PRECOMPILE.call(")
				if check < 0 || send < 0 || check > send {
					t.Fatalf("length check must precede send (check=%d send=%d)", check, send)
				}
			}
		})
	}
}

func TestRender_Structure(t *testing.T) {
	src := mustRender(t, newRenderer(t), params.Defaults())

	ordered := []string{
		"// SPDX-License-Identifier: MIT",
		"pragma solidity ^0.8.20;",
		`import "@openzeppelin/contracts/access/Ownable.sol";`,
		`import "@openzeppelin/contracts/token/ERC20/IERC20.sol";`,
		"@author Dery",
		"contract DeryBridgeBridge",
		"DESTINATION_PARA_ID = 2004;",
		"address public immutable XCM_PRECOMPILE;",
		"event XcmSent(",
		"event XcmFailed(",
		"constructor(address _xcmPrecompile) Ownable(msg.sender) {",
		"function bridgeNative(address beneficiary, uint128 amount) external payable {",
		"function bridgeNative(bytes memory beneficiaryBytes, uint128 amount) public payable nonReentrant {",
		"function bridgeERC20(address tokenAddress, address beneficiary, uint128 amount) external {",
		"function bridgeERC20(address tokenAddress, bytes memory beneficiaryBytes, uint128 amount) public nonReentrant {",
		"function setPalletIndex(uint8 newIndex) external onlyOwner {",
		"function setDefaultWeight(uint64 newWeight) external onlyOwner {",
		"function rescueNative(",
		"function rescueERC20(",
		"receive() external payable {}",
	}
	last := -1
	for _, fragment := range ordered {
		idx := strings.Index(src, fragment)
		if idx < 0 {
			t.Fatalf("missing %q", fragment)
		}
		if idx < last {
			t.Fatalf("%q appears out of order", fragment)
		}
		last = idx
	}

	if !strings.HasPrefix(src, "// SPDX-License-Identifier: MIT\npragma solidity ^0.8.20;\n\nimport ") {
		t.Fatalf("unexpected preamble:\n%s", src[:80])
	}
	if !strings.Contains(src, " */\ncontract DeryBridgeBridge") {
		t.Fatalf("declaration should follow the doc block directly")
	}
	if !strings.HasSuffix(src, "    receive() external payable {}\n}\n") {
		t.Fatalf("unexpected tail: %q", src[len(src)-60:])
	}
	if strings.Count(src, "import \"") != len(contract.Imports) {
		t.Fatalf("expected %d imports", len(contract.Imports))
	}
	if strings.Contains(src, "{%") || strings.Contains(src, "{{") {
		t.Fatalf("template markup leaked into output")
	}
}

func TestRender_ConcurrentCalls(t *testing.T) {
	r := newRenderer(t)
	want := mustRender(t, r, params.Defaults())

	var wg sync.WaitGroup
	results := make([]string, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := r.Render(params.Defaults())
			results[i], errs[i] = out.String(), err
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("render %d: %v", i, errs[i])
		}
		if results[i] != want {
			t.Fatalf("render %d differs from sequential output", i)
		}
	}
}

func TestRenderSection_Independently(t *testing.T) {
	r := newRenderer(t)
	doc := contract.Build(params.Defaults(), testsupport.ReferenceTime)

	section, ok := doc.Section(contract.SectionConfiguration)
	if !ok {
		t.Fatalf("configuration section missing")
	}
	got, err := r.RenderSection(section)
	if err != nil {
		t.Fatalf("render section: %v", err)
	}
	want := strings.Join([]string{
		"    // --- CONFIGURATION ---",
		"    uint32 public constant DESTINATION_PARA_ID = 2004;",
		"    uint256 public constant BENEFICIARY_LENGTH = 20;",
		"    address public immutable XCM_PRECOMPILE;",
		"    uint64 public defaultWeight = 1000000000;",
		"    uint8 public palletIndex = 50;",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("configuration section mismatch (-want +got):\n%s", diff)
	}

	imports, _ := doc.Section(contract.SectionImports)
	got, err = r.RenderSection(imports)
	if err != nil {
		t.Fatalf("render imports: %v", err)
	}
	var wantImports strings.Builder
	for _, path := range contract.Imports {
		wantImports.WriteString(`import "` + path + "\";\n")
	}
	if diff := cmp.Diff(wantImports.String(), got); diff != "" {
		t.Fatalf("imports section mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_TemplateOverrides(t *testing.T) {
	overrides := fstest.MapFS{
		"events.sol.tpl": {Data: []byte("    // custom events\n")},
	}
	r := newRenderer(t, contract.WithTemplateFS(overrides))
	if _, err := r.Render(params.Defaults()); err == nil {
		t.Fatalf("expected error when a section template is missing")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "events.sol.tpl"), []byte("    // custom events\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	r = newRenderer(t, contract.WithTemplateDir(dir))
	src := mustRender(t, r, params.Defaults())
	assertContains(t, src, "    // custom events\n", "function bridgeNative(")
	if strings.Contains(src, "event XcmFailed(") {
		t.Fatalf("override should replace the events section")
	}
}

func TestRender_PackageLevel(t *testing.T) {
	out, err := contract.Render(params.Defaults())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, out.String(), "contract DeryBridgeBridge")
}

func between(t *testing.T, src, start, end string) string {
	t.Helper()
	i := strings.Index(src, start)
	if i < 0 {
		t.Fatalf("missing %q", start)
	}
	rest := src[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		t.Fatalf("missing %q after %q", end, start)
	}
	return rest[:j]
}
