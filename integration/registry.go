package integration

/* variants maps each discriminator with provider-specific behavior to the
 * constructor of its variant. The table is declared once at process start;
 * resolution is a pure in-memory dispatch after the row load. GitLab and
 * generic API webhooks have no behavior of their own and stay generic.
 */
var variants = map[Type]func(Integration) Record{
	GitHubWebhook:    func(i Integration) Record { return GitHub{i} },
	BitbucketWebhook: func(i Integration) Record { return Bitbucket{i} },
}

// Resolve wraps a loaded record in the variant matching its discriminator.
// Records with an unknown or variant-less type come back unchanged.
func Resolve(i Integration) Record {
	if wrap, ok := variants[i.Type]; ok {
		return wrap(i)
	}
	return i
}
