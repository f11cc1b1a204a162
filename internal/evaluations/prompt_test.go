package evaluations

import (
	"strings"
	"testing"
)

func TestBuildPromptUsesPlaceholders(t *testing.T) {
	prompt := BuildPrompt(validRequest())

	for _, want := range []string{
		"- Title: Seedrowz\n",
		"- Business Model: Subscription\n",
		"- Competition: Not specified\n",
		"- Traction: None\n",
		"- Vision (2-5 years): Not specified\n",
		"Return ONLY valid JSON, no additional text.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("prompt has unreplaced placeholders")
	}
}

func TestBuildPromptRendersOptionalFields(t *testing.T) {
	req := validRequest()
	req.Traction = "100 paying users"
	req.MVPReady = "Yes"
	req.Skills = "   "

	prompt := BuildPrompt(req)
	if !strings.Contains(prompt, "- Traction: 100 paying users\n") || !strings.Contains(prompt, "- MVP Ready: Yes\n") {
		t.Fatalf("optional fields not rendered")
	}
	if !strings.Contains(prompt, "- Skills: Not specified\n") {
		t.Fatalf("blank optional field should use placeholder")
	}
}

func TestBuildPromptIsDeterministicAndDoesNotExpandInput(t *testing.T) {
	req := validRequest()
	req.Title = "{{PITCH}}"
	a := BuildPrompt(req)
	b := BuildPrompt(req)
	if a != b {
		t.Fatalf("prompt is not deterministic")
	}
	if !strings.Contains(a, "- Title: {{PITCH}}\n") {
		t.Fatalf("user text must be inserted literally")
	}
}
