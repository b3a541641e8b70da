package registry

import "github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"

// BuiltinSources is the curated feed list shipped with the product.
// Organized by category for transparency - you see exactly what the
// discover feed is subscribed to. Immutable process-wide configuration.
var BuiltinSources = []domain.Source{
	// ============================================
	// TECH
	// ============================================
	{ID: "builtin-techcrunch", Name: "TechCrunch", FeedURL: "https://techcrunch.com/feed/", Category: domain.CategoryTech, Enabled: true},
	{ID: "builtin-theverge", Name: "The Verge", FeedURL: "https://www.theverge.com/rss/index.xml", Category: domain.CategoryTech, Enabled: true},
	{ID: "builtin-arstechnica", Name: "Ars Technica", FeedURL: "https://feeds.arstechnica.com/arstechnica/index", Category: domain.CategoryTech, Enabled: true},
	{ID: "builtin-wired", Name: "Wired", FeedURL: "https://www.wired.com/feed/rss", Category: domain.CategoryTech, Enabled: true},
	{ID: "builtin-engadget", Name: "Engadget", FeedURL: "https://www.engadget.com/rss.xml", Category: domain.CategoryTech, Enabled: true},

	// ============================================
	// BUSINESS
	// ============================================
	{ID: "builtin-cnbc", Name: "CNBC", FeedURL: "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=10001147", Category: domain.CategoryBusiness, Enabled: true},
	{ID: "builtin-marketwatch", Name: "MarketWatch", FeedURL: "http://feeds.marketwatch.com/marketwatch/topstories/", Category: domain.CategoryBusiness, Enabled: true},
	{ID: "builtin-forbes", Name: "Forbes", FeedURL: "https://www.forbes.com/real-time/feed2/", Category: domain.CategoryBusiness, Enabled: true},
	{ID: "builtin-businessinsider", Name: "Business Insider", FeedURL: "https://www.businessinsider.com/rss", Category: domain.CategoryBusiness, Enabled: true},

	// ============================================
	// SPORTS
	// ============================================
	{ID: "builtin-espn", Name: "ESPN", FeedURL: "https://www.espn.com/espn/rss/news", Category: domain.CategorySports, Enabled: true},
	{ID: "builtin-bbcsport", Name: "BBC Sport", FeedURL: "https://feeds.bbci.co.uk/sport/rss.xml", Category: domain.CategorySports, Enabled: true},
	{ID: "builtin-skysports", Name: "Sky Sports", FeedURL: "https://www.skysports.com/rss/12040", Category: domain.CategorySports, Enabled: true},
	{ID: "builtin-cbssports", Name: "CBS Sports", FeedURL: "https://www.cbssports.com/rss/headlines/", Category: domain.CategorySports, Enabled: true},

	// ============================================
	// ENTERTAINMENT
	// ============================================
	{ID: "builtin-variety", Name: "Variety", FeedURL: "https://variety.com/feed/", Category: domain.CategoryEntertainment, Enabled: true},
	{ID: "builtin-hollywoodreporter", Name: "Hollywood Reporter", FeedURL: "https://www.hollywoodreporter.com/feed/", Category: domain.CategoryEntertainment, Enabled: true},
	{ID: "builtin-rollingstone", Name: "Rolling Stone", FeedURL: "https://www.rollingstone.com/feed/", Category: domain.CategoryEntertainment, Enabled: true},

	// ============================================
	// HEALTH
	// ============================================
	{ID: "builtin-medicalnewstoday", Name: "Medical News Today", FeedURL: "https://www.medicalnewstoday.com/rss", Category: domain.CategoryHealth, Enabled: true},
	{ID: "builtin-healthline", Name: "Healthline", FeedURL: "https://www.healthline.com/rss", Category: domain.CategoryHealth, Enabled: true},
	{ID: "builtin-statnews", Name: "STAT News", FeedURL: "https://www.statnews.com/feed/", Category: domain.CategoryHealth, Enabled: true},

	// ============================================
	// GAMING (whitelisted outlets only; see classify package)
	// ============================================
	{ID: "builtin-ign", Name: "IGN", FeedURL: "https://feeds.ign.com/ign/all", Category: domain.CategoryGaming, Enabled: true},
	{ID: "builtin-gamespot", Name: "GameSpot", FeedURL: "https://www.gamespot.com/feeds/news/", Category: domain.CategoryGaming, Enabled: true},
	{ID: "builtin-kotaku", Name: "Kotaku", FeedURL: "https://kotaku.com/rss", Category: domain.CategoryGaming, Enabled: true},
	{ID: "builtin-polygon", Name: "Polygon", FeedURL: "https://www.polygon.com/rss/index.xml", Category: domain.CategoryGaming, Enabled: true},
	{ID: "builtin-eurogamer", Name: "Eurogamer", FeedURL: "https://www.eurogamer.net/feed", Category: domain.CategoryGaming, Enabled: true},
	{ID: "builtin-pcgamer", Name: "PC Gamer", FeedURL: "https://www.pcgamer.com/rss/", Category: domain.CategoryGaming, Enabled: true},
	{ID: "builtin-rockpapershotgun", Name: "Rock Paper Shotgun", FeedURL: "https://www.rockpapershotgun.com/feed", Category: domain.CategoryGaming, Enabled: true},

	// ============================================
	// CRYPTO
	// ============================================
	{ID: "builtin-coindesk", Name: "CoinDesk", FeedURL: "https://www.coindesk.com/arc/outboundfeeds/rss/", Category: domain.CategoryCrypto, Enabled: true},
	{ID: "builtin-cointelegraph", Name: "Cointelegraph", FeedURL: "https://cointelegraph.com/rss", Category: domain.CategoryCrypto, Enabled: true},
	{ID: "builtin-decrypt", Name: "Decrypt", FeedURL: "https://decrypt.co/feed", Category: domain.CategoryCrypto, Enabled: true},

	// ============================================
	// TRAVEL
	// ============================================
	{ID: "builtin-lonelyplanet", Name: "Lonely Planet", FeedURL: "https://www.lonelyplanet.com/news/feed", Category: domain.CategoryTravel, Enabled: true},
	{ID: "builtin-travelleisure", Name: "Travel + Leisure", FeedURL: "https://www.travelandleisure.com/feeds/all.rss", Category: domain.CategoryTravel, Enabled: true},

	// ============================================
	// POLITICS
	// ============================================
	{ID: "builtin-politico", Name: "Politico", FeedURL: "https://www.politico.com/rss/politicopicks.xml", Category: domain.CategoryPolitics, Enabled: true},
	{ID: "builtin-thehill", Name: "The Hill", FeedURL: "https://thehill.com/feed/", Category: domain.CategoryPolitics, Enabled: true},

	// ============================================
	// WORLD
	// ============================================
	{ID: "builtin-bbcworld", Name: "BBC World", FeedURL: "https://feeds.bbci.co.uk/news/world/rss.xml", Category: domain.CategoryWorld, Enabled: true},
	{ID: "builtin-aljazeera", Name: "Al Jazeera", FeedURL: "https://www.aljazeera.com/xml/rss/all.xml", Category: domain.CategoryWorld, Enabled: true},
	{ID: "builtin-reuters", Name: "Reuters", FeedURL: "https://www.reutersagency.com/feed/?best-topics=world&post_type=best", Category: domain.CategoryWorld, Enabled: true},

	// ============================================
	// GENERAL
	// ============================================
	{ID: "builtin-bbcnews", Name: "BBC News", FeedURL: "https://feeds.bbci.co.uk/news/rss.xml", Category: domain.CategoryGeneral, Enabled: true},
	{ID: "builtin-npr", Name: "NPR News", FeedURL: "https://feeds.npr.org/1001/rss.xml", Category: domain.CategoryGeneral, Enabled: true},
	{ID: "builtin-cnn", Name: "CNN", FeedURL: "http://rss.cnn.com/rss/edition.rss", Category: domain.CategoryGeneral, Enabled: true},
}
