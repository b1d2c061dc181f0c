package ai

import "fmt"

// optimizePrompt is the fixed instruction template for the rewrite call. The
// resume text is embedded verbatim; the response is expected to be the
// optimized resume text and nothing else.
const optimizePrompt = `You are a professional resume writer and career coach. Optimize the following resume to be more impactful and ATS-friendly.

IMPORTANT RULES:
1. Preserve the EXACT structure and section order
2. Keep the same section headers
3. Improve the wording to be more action-oriented and quantifiable
4. Add relevant keywords for ATS systems
5. Fix any grammar or spelling issues
6. Make bullet points concise but impactful
7. DO NOT add new sections or remove existing ones
8. DO NOT change contact information (name, email, phone, address)
9. Return ONLY the optimized resume text, nothing else

ORIGINAL RESUME:
%s

OPTIMIZED RESUME:`

func buildPrompt(resumeText string) string {
	return fmt.Sprintf(optimizePrompt, resumeText)
}
