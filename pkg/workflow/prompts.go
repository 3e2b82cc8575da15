package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt builders for every LLM-backed stage. Each prompt carries an
// <action> tag naming the stage so responses can be traced back to their
// origin in logs.

func buildUserSummaryPrompt(user *UserInfo) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You summarize a learner profile for content personalization.\n")
	prompt.WriteString("Keep every identity field unchanged. Only fill the user_info field.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>summarise_user</action>\n\n")

	prompt.WriteString("<existing_data>\n")
	writeJSON(&prompt, user)
	prompt.WriteString("</existing_data>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON matching the input schema, with user_info set to a short profile summary:\n")
	prompt.WriteString("{\"id\": \"...\", \"username\": \"...\", \"age\": \"...\", \"grade\": \"...\", \"is_active\": true, \"preferences\": \"...\", \"user_info\": \"summary\"}\n")
	prompt.WriteString("Weave the stated preferences into the summary when present.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildEnrichmentPrompt(foundation *LearningResource, external map[string]interface{}) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You enrich a curriculum resource record for content generation.\n")
	prompt.WriteString("The foundation record is authoritative. External data may only fill fields the foundation leaves empty or vague.\n")
	prompt.WriteString("Never drop, rename, or add fields. Never contradict the foundation record.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>content_enrichment</action>\n\n")

	prompt.WriteString("<foundation_data>\n")
	writeJSON(&prompt, foundation)
	prompt.WriteString("</foundation_data>\n\n")

	prompt.WriteString("<scrapped_data>\n")
	if len(external) > 0 {
		writeJSON(&prompt, external)
	} else {
		prompt.WriteString("(none)\n")
	}
	prompt.WriteString("</scrapped_data>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON with exactly these fields:\n")
	prompt.WriteString("{\"subject\": \"...\", \"grade\": 0, \"unit\": \"...\", \"topic_id\": \"...\", \"topic\": \"...\", \"description\": \"...\", \"elaboration\": \"...\", \"keywords\": [], \"hours\": 0, \"references\": \"...\"}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildRoutePrompt(res *EnrichedResource) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are a routing classifier. Your ONLY job is to pick the content strategy.\n")
	prompt.WriteString("You do NOT generate content. You only classify.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>route_select</action>\n\n")

	prompt.WriteString("<current_resources>\n")
	writeJSON(&prompt, res)
	prompt.WriteString("</current_resources>\n\n")

	prompt.WriteString("<route_definitions>\n")
	prompt.WriteString("LESSON: structured curriculum teaching material with sections, examples and exercises\n")
	prompt.WriteString("BLOG: narrative explanatory article for self-paced reading\n")
	prompt.WriteString("</route_definitions>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON: {\"route\": \"LESSON|BLOG\"}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildLessonPrompt(user *UserInfo, res *EnrichedResource, style Style, referenceLinks []string) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You write personalized lesson content in markdown for a school learner.\n")
	prompt.WriteString("Match the learner's grade level and the requested style. Cite the reference links where relevant.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>generate_lesson</action>\n\n")

	writeGenerationContext(&prompt, user, res, style)

	prompt.WriteString("<reference_links>\n")
	if len(referenceLinks) > 0 {
		for _, link := range referenceLinks {
			prompt.WriteString("- " + link + "\n")
		}
	} else {
		prompt.WriteString("(none)\n")
	}
	prompt.WriteString("</reference_links>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with the complete lesson as markdown. Start with a single level-1 heading.\n")
	prompt.WriteString("Include a References section listing the links you used.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildBlogPrompt(user *UserInfo, res *EnrichedResource, style Style) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You write an educational blog post in markdown for a school learner.\n")
	prompt.WriteString("Match the learner's grade level and the requested style.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>generate_blog</action>\n\n")

	writeGenerationContext(&prompt, user, res, style)

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with the complete blog post as markdown. Start with a single level-1 heading.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildSeoPrompt(content string) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You reformat educational markdown for search visibility and readability.\n")
	prompt.WriteString("This is a STRUCTURAL pass only: fix heading hierarchy, spacing and list markup.\n")
	prompt.WriteString("Never change, remove or add factual statements.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>seo_adjust</action>\n\n")

	prompt.WriteString("<draft>\n")
	prompt.WriteString(content)
	prompt.WriteString("\n</draft>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with the reformatted markdown only, no commentary.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildFeedbackPrompt(content string) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You review generated learning content as a strict editor.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>collect_feedback</action>\n\n")

	prompt.WriteString("<draft>\n")
	prompt.WriteString(content)
	prompt.WriteString("\n</draft>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"rating\": 3,\n")
	prompt.WriteString("  \"comments\": \"overall critique\",\n")
	prompt.WriteString("  \"needed\": true,\n")
	prompt.WriteString("  \"gaps\": [\"specific deficiency\"],\n")
	prompt.WriteString("  \"ai_reliability_score\": 0.8\n")
	prompt.WriteString("}\n")
	prompt.WriteString("rating is 1-5. needed is false only when the content requires no further improvement.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildGapPrompt(content string, feedback *Feedback) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You perform gap analysis on learning content, informed by an earlier review.\n")
	prompt.WriteString("Your output REPLACES the earlier review, so restate everything still relevant.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>find_gaps</action>\n\n")

	prompt.WriteString("<draft>\n")
	prompt.WriteString(content)
	prompt.WriteString("\n</draft>\n\n")

	prompt.WriteString("<previous_feedback>\n")
	writeJSON(&prompt, feedback)
	prompt.WriteString("</previous_feedback>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON in the same shape as the previous feedback:\n")
	prompt.WriteString("{\"rating\": 3, \"comments\": \"...\", \"needed\": true, \"gaps\": [\"...\"], \"ai_reliability_score\": 0.8}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildValidationPrompt(content string) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You validate learning content against structural and compliance rules:\n")
	prompt.WriteString("a single clear title, logical heading hierarchy, grade-appropriate language, no unsafe or off-topic material.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>post_validate</action>\n\n")

	prompt.WriteString("<draft>\n")
	prompt.WriteString(content)
	prompt.WriteString("\n</draft>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\"is_valid\": true, \"violations\": []}\n")
	prompt.WriteString("violations lists one descriptive message per failed rule, empty if valid.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func buildImprovePrompt(content string, feedback *Feedback, validation *ValidationResult) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You rewrite learning content to resolve every listed gap and violation.\n")
	prompt.WriteString("Keep what already works. Your output fully replaces the draft.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<action>improve_content</action>\n\n")

	prompt.WriteString("<draft>\n")
	prompt.WriteString(content)
	prompt.WriteString("\n</draft>\n\n")

	prompt.WriteString("<feedback>\n")
	writeJSON(&prompt, feedback)
	prompt.WriteString("</feedback>\n\n")

	prompt.WriteString("<validation_result>\n")
	if validation != nil {
		writeJSON(&prompt, validation)
	} else {
		prompt.WriteString("(none)\n")
	}
	prompt.WriteString("</validation_result>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with the complete improved markdown only, no commentary.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func writeGenerationContext(prompt *strings.Builder, user *UserInfo, res *EnrichedResource, style Style) {
	prompt.WriteString("<user_data>\n")
	writeJSON(prompt, user)
	prompt.WriteString("</user_data>\n\n")

	prompt.WriteString("<resource_data>\n")
	writeJSON(prompt, res)
	prompt.WriteString("</resource_data>\n\n")

	prompt.WriteString("<style>")
	prompt.WriteString(string(style))
	prompt.WriteString("</style>\n\n")
}

func writeJSON(prompt *strings.Builder, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		prompt.WriteString(fmt.Sprintf("%+v\n", v))
		return
	}
	prompt.Write(data)
	prompt.WriteString("\n")
}
