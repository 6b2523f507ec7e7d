// Package kbscrape turns an arbitrary website into a structured knowledge
// base. It discovers candidate content pages from sitemaps and a bounded
// link crawl, extracts their readable body text as markdown, and classifies
// each page into a content-type label.
//
// This package contains domain types, interfaces and the pure URL heuristics
// shared by every stage. Implementations live in subdirectories named after
// their primary dependency (e.g., goquery/, rod/, readability/, ahocorasick/).
package kbscrape

// UserAgent is sent with every outbound request unless overridden by
// Credentials.Headers.
const UserAgent = "Mozilla/5.0 (compatible; KnowledgeBaseScraper/1.0)"

// RobotsAgent is the agent name matched against robots.txt groups.
const RobotsAgent = "KnowledgeBaseScraper"
