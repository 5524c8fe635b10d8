package models

// Database schema overview:
// 1. users - accounts authenticated with bearer JWTs or the access_token cookie
// 2. refresh_tokens - hashed opaque refresh tokens with an expiry
// 3. resumes - archived resume uploads with their extracted text and raw model output
// 4. resume_analyses - one scored analysis per resume upload (status processing/completed/failed)
// 5. skills - reference skills with an importance tier and demand score
// 6. courses - learning resources, many per skill
// 7. user_skills - per-user current and required proficiency for a skill
