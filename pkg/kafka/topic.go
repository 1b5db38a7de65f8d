package kafka

import "fmt"

// TopicPrefix namespaces every topic published by the storefront so shared
// clusters can tell our traffic apart.
const TopicPrefix = "store"

// Topic builds a namespaced topic name, e.g. Topic("cart", "updated")
// returns "store.cart.updated".
func Topic(domain, action string) string {
	return fmt.Sprintf("%s.%s.%s", TopicPrefix, domain, action)
}
