// Package wordpress reads categories and posts from a WordPress site through
// its REST API (wp-json/wp/v2).
//
// Rendered titles come back HTML-encoded ("Release &#8211; 9.9"); callers
// decode them with htmltext.DecodeEntities.
package wordpress
