// Package movie loads and validates movie records from delimited text.
//
// A movie file is a CSV with a header row followed by rows of four positional
// fields: title, year, languages and rating. The languages field is itself a
// list, by default written as "[English;French]".
//
// # Validation
//
// Each row is checked against a [Policy]. The rules run in a fixed order and the
// first failure wins:
//
//  1. title or year empty          -> "missing title or year"
//  2. year not an integer in range -> "invalid year"
//  3. languages not bracketed      -> "invalid language format"
//  4. more than MaxLanguages       -> "too many languages"
//  5. a language over the limit    -> "language too long"
//
// A failing row is skipped and reported as a [SkipNotice] carrying its 1-based
// source line; it never aborts the load. The rating is handled separately: the
// default policy keeps the row and stores 0.0 when the rating is missing,
// unparsable or outside [MinRating, MaxRating].
//
// # Policies
//
// Two policies are registered at init time:
//
//   - "bracketed" (default): "[a;b]" required, invalid rating becomes 0.0
//   - "plain": brackets optional, comma-separated (CSV-quoted) languages,
//     invalid rating skips the row
//
// A quote inside an unquoted field is kept as part of the value unless the
// policy sets StrictQuotes, in which case the row is skipped as malformed.
//
// Further policies can be registered with [Register] or read from YAML with
// [LoadPolicyFile].
//
// # Failure
//
// Only an unopenable source or a failing reader aborts a load; the error is a
// [*SourceError] and no partial collection is returned.
package movie
