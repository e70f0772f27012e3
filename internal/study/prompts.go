package study

const summaryPrompt = `Summarize the following document in a clear, structured way.
Use bullet points for key topics. Keep it concise (under 200 words).

DOCUMENT TEXT:
%s`

const tutorPrompt = `You are a helpful, encouraging tutor.
Your goal is to help the student understand the uploaded document.

RULES:
1. Answer primarily based on the provided document content.
2. If the student asks for a simple explanation, you MAY use outside analogies (like pizza, lego, sports) to make it simple.
3. Be concise.`

const frustratedInstruction = `The student seems confused. Switch to a very supportive tone.
Break down the concept into tiny steps.`

const chatPrompt = `%s

=== DOCUMENT CONTENT (use only this) ===
%s

=== STUDENT QUESTION ===
%s

Your answer:`

const eli5Prompt = `Rewrite the following concept so a 5-year-old could understand it.
- Use fun analogies.
- Short sentences.
- No big words.
- Keep it under 3 sentences.

Original answer to rewrite:
%s

Simplified version for 5-year-old:`

const quizPrompt = `You are a strict teacher.

Create 5 multiple-choice questions from the text below.

RULES:
- Output ONLY valid JSON (a JSON array of objects)
- Do NOT add explanations, markdown, or text outside the JSON
- Do NOT wrap in code fences
- Each object must have EXACT keys:
  question, options, correctAnswer, explanation
- options must be a list of 4 strings
- correctAnswer must be the INDEX (0, 1, 2, or 3) of the correct option
- explanation must be a brief explanation of why the answer is correct

TEXT:
%s`

const flashcardPrompt = `Create 10 flashcards from the following text.
Each flashcard should have a "front" (question or key term) and a "back" (answer or definition).

RULES:
- Output ONLY valid JSON (a JSON array of objects)
- Each object must have EXACT keys: front, back
- front should be a key term or short question
- back should be the answer or definition
- Do NOT add any text, markdown, or code fences outside the JSON array

TEXT:
%s`

const glossaryPrompt = `You are an expert tutor. I will provide you with an educational text.
Extract 5 of the most important technical terms or concepts from it.
Provide a short, accurate, 1-sentence definition for each term based strictly on the text provided.

Return ONLY a valid JSON list of objects. Each object must have exactly two keys: "term" and "definition".
Do not include markdown formatting like code fences or any other explanatory text.

Text:
%s`

const scriptPrompt = `You are an enthusiastic YouTube teacher explaining the following text.
Create a comprehensive, engaging teaching script.

CRITICAL RULES:
1. Write ONLY the exact spoken words.
2. DO NOT include stage directions, speaker names (like "Host:"), or sound effects.
3. DO NOT use any markdown formatting (no **, *, #, etc.).
4. Give it a proper introduction and a clear, finalizing conclusion.

TEXT TO EXPLAIN:
%s`
