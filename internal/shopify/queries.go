package shopify

// CustomerWithMetafieldsQuery fetches a customer by GID with up to 50
// metafields; the account-executive assignment lives in one of them.
const CustomerWithMetafieldsQuery = `
query getCustomerWithMetafields($id: ID!) {
  customer(id: $id) {
    id
    firstName
    lastName
    email
    phone
    metafields(first: 50) {
      edges {
        node {
          id
          namespace
          key
          value
          type
        }
      }
    }
  }
}
`

// MetaobjectQuery fetches a metaobject by GID with its field list.
const MetaobjectQuery = `
query getMetaobject($id: ID!) {
  metaobject(id: $id) {
    id
    type
    fields {
      key
      value
      type
    }
  }
}
`

// ShopQuery is a minimal connectivity check against the Admin API.
const ShopQuery = `
query {
  shop {
    id
    name
    myshopifyDomain
  }
}
`
