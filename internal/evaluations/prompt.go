package evaluations

import "strings"

const (
	notSpecified = "Not specified"
	noTraction   = "None"
)

const promptTemplate = `You are an expert strong startup evaluator. Analyze the following startup idea and provide a comprehensive and detailed evaluation.

Startup Details:
- Title: {{TITLE}}
- One-Line Pitch: {{PITCH}}
- Problem Statement: {{PROBLEM}}
- Proposed Solution: {{SOLUTION}}
- Target Audience: {{TARGET_AUDIENCE}}
- Business Model: {{BUSINESS_MODEL}}
- Competition: {{COMPETITION}}
- Founder Experience: {{EXPERIENCE}}
- Education: {{EDUCATION}}
- Skills: {{SKILLS}}
- Founder Role: {{FOUNDER_ROLE}}
- Traction: {{TRACTION}}
- MVP Ready: {{MVP_READY}}
- Vision (2-5 years): {{VISION}}

Please provide a detailed evaluation in the following JSON format:
{
  "feasibility": <number 0-100>,
  "marketPotential": <number 0-100>,
  "competition": <number 0-100>,
  "scalability": <number 0-100>,
  "executionDifficulty": <number 0-100>,
  "verdict": "<Pass (Good Potential) | Needs Work | Risky>",
  "summary": "<2-3 sentence summary>",
  "nextSteps": ["<step 1>", "<step 2>", "<step 3>"],
  "techStack": "<recommended tech stack>",
  "fundingStage": "<Pre-Seed / Angel | Seed | Series A>",
  "investorMatches": [
    {"name": "<investor name>", "type": "<Angel | VC | Angel Network>", "ticketSize": "<amount range>"}
  ]
}

Return ONLY valid JSON, no additional text.`

// BuildPrompt renders the evaluation prompt. Required fields are inserted
// verbatim; blank optional fields become a placeholder.
func BuildPrompt(req Request) string {
	// A single Replacer pass never rescans inserted user text.
	r := strings.NewReplacer(
		"{{TITLE}}", req.Title,
		"{{PITCH}}", req.Pitch,
		"{{PROBLEM}}", req.Problem,
		"{{SOLUTION}}", req.Solution,
		"{{TARGET_AUDIENCE}}", req.TargetAudience,
		"{{BUSINESS_MODEL}}", req.BusinessModel,
		"{{COMPETITION}}", orDefault(req.Competition, notSpecified),
		"{{EXPERIENCE}}", orDefault(req.Experience, notSpecified),
		"{{EDUCATION}}", orDefault(req.Education, notSpecified),
		"{{SKILLS}}", orDefault(req.Skills, notSpecified),
		"{{FOUNDER_ROLE}}", orDefault(req.FounderRole, notSpecified),
		"{{TRACTION}}", orDefault(req.Traction, noTraction),
		"{{MVP_READY}}", orDefault(req.MVPReady, notSpecified),
		"{{VISION}}", orDefault(req.Vision, notSpecified),
	)
	return r.Replace(promptTemplate)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
