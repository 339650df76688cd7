// Package notegrab recovers normalized note records (title, description,
// author, publish date and direct media URLs) from the rendered HTML of a
// social-media note page.
//
// The page embeds its data as a JavaScript object literal assigned to a
// global variable. The engine that locates, repairs and interprets that
// literal lives in jsobj/ and state/; everything else (fetching, short-link
// resolution, storage, export) is an external collaborator.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package notegrab
