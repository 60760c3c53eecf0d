package tui

type usecase struct {
	Title       string
	Description string
}

// usecases are the onboarding choices shown before the create form.
var usecases = []usecase{
	{"Airdrop Protection", "Protect your airdrop from farmers and sybil accounts."},
	{"Sybil Prevention", "Keep sybils out of voting, grants and allowlists."},
	{"Bot Prevention", "Stop bots from spamming your dapp."},
	{"Other", "Something else. You can still set up a community."},
}
